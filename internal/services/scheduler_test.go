package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newSchedulerForTest(t *testing.T) Scheduler {
	scheduler := NewScheduler(zap.NewNop().Sugar())
	t.Cleanup(scheduler.Stop)
	return scheduler
}

func TestScheduler_FiresOnceAtEndTime(t *testing.T) {
	scheduler := newSchedulerForTest(t)

	fired := make(chan struct{}, 4)
	scheduler.Schedule("poll-1", time.Now().Add(100*time.Millisecond), func() {
		fired <- struct{}{}
	})

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}

	select {
	case <-fired:
		t.Fatal("one-shot timer fired more than once")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestScheduler_SpentTimerIsRemoved(t *testing.T) {
	scheduler := newSchedulerForTest(t)

	fired := make(chan struct{}, 1)
	scheduler.Schedule("poll-1", time.Now().Add(100*time.Millisecond), func() {
		fired <- struct{}{}
	})

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}

	inner := scheduler.(*pollScheduler).scheduler
	assert.Eventually(t, func() bool {
		return inner.Len() == 0
	}, 2*time.Second, 50*time.Millisecond, "spent one-shot job still registered")
}

func TestScheduler_RescheduleReplacesTimer(t *testing.T) {
	scheduler := newSchedulerForTest(t)

	firstFired := make(chan struct{}, 1)
	secondFired := make(chan struct{}, 1)

	scheduler.Schedule("poll-1", time.Now().Add(150*time.Millisecond), func() {
		firstFired <- struct{}{}
	})
	scheduler.Schedule("poll-1", time.Now().Add(300*time.Millisecond), func() {
		secondFired <- struct{}{}
	})

	select {
	case <-secondFired:
	case <-time.After(5 * time.Second):
		t.Fatal("replacement timer did not fire")
	}

	select {
	case <-firstFired:
		t.Fatal("replaced timer still fired")
	default:
	}
}

func TestScheduler_CancelDropsTimer(t *testing.T) {
	scheduler := newSchedulerForTest(t)

	fired := make(chan struct{}, 1)
	scheduler.Schedule("poll-1", time.Now().Add(200*time.Millisecond), func() {
		fired <- struct{}{}
	})
	scheduler.Cancel("poll-1")

	select {
	case <-fired:
		t.Fatal("canceled timer fired")
	case <-time.After(700 * time.Millisecond):
	}
}

func TestScheduler_CancelUnknownIDIsHarmless(t *testing.T) {
	scheduler := newSchedulerForTest(t)

	scheduler.Cancel("never-scheduled")
}
