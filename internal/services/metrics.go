package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vote_polls_created_total",
		Help: "Polls posted to a vote channel.",
	})

	pollsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vote_polls_closed_total",
		Help: "Polls tallied at their end time.",
	})

	classificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vote_classification_failures_total",
		Help: "Voter standing lookups that degraded to observer.",
	})
)
