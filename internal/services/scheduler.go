package services

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler arms one one-shot timer per open poll. Timers are process-local;
// restarts recover them through RestorePending.
type Scheduler interface {
	// Schedule arms a timer for the poll, replacing any existing one.
	Schedule(pollID string, at time.Time, task func())
	// Cancel drops the poll's timer if one is armed.
	Cancel(pollID string)
	Stop()
}

type pollScheduler struct {
	scheduler *gocron.Scheduler
	logger    *zap.SugaredLogger
}

func NewScheduler(logger *zap.SugaredLogger) Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.StartAsync()

	return &pollScheduler{
		scheduler: scheduler,
		logger:    logger,
	}
}

func (s *pollScheduler) Schedule(pollID string, at time.Time, task func()) {
	// Last write wins for duplicate ids.
	_ = s.scheduler.RemoveByTag(pollID)

	_, err := s.scheduler.
		Every(1).
		Day().
		StartAt(at).
		LimitRunsTo(1).
		Tag(pollID).
		Do(func() {
			task()

			// Drop the spent one-shot job so tags do not accumulate
			// over the process lifetime.
			if err := s.scheduler.RemoveByTag(pollID); err != nil {
				s.logger.Debugw("failed to remove spent timer", "poll", pollID, "error", err)
			}
		})
	if err != nil {
		s.logger.Errorw("failed to schedule poll close", "poll", pollID, "at", at, "error", err)
		return
	}

	s.logger.Debugw("poll close scheduled", "poll", pollID, "at", at)
}

func (s *pollScheduler) Cancel(pollID string) {
	if err := s.scheduler.RemoveByTag(pollID); err != nil {
		s.logger.Debugw("no timer to cancel", "poll", pollID, "error", err)
	}
}

func (s *pollScheduler) Stop() {
	s.scheduler.Stop()
}
