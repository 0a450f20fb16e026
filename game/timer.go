package game

import (
	"sync"
	"time"
)

// TimerFactory creates round timers. Sessions never touch time.Ticker
// directly so tests can drive ticks by hand and count start/stop calls.
type TimerFactory interface {
	Start(interval time.Duration, ticks chan<- time.Time) TimerHandle
}

// TimerHandle cancels a running timer. Stop is idempotent and must be
// called before the session that owns the timer is torn down, otherwise a
// stale tick could reach a logically dead session.
type TimerHandle interface {
	Stop()
}

type tickerFactory struct{}

func NewTimerFactory() TimerFactory {
	return tickerFactory{}
}

func (tickerFactory) Start(interval time.Duration, ticks chan<- time.Time) TimerHandle {
	timer := &roundTimer{stop: make(chan struct{})}
	go timer.run(interval, ticks)
	return timer
}

// roundTimer is the repeating one-second driver behind a session's
// countdown. It delivers ticks until stopped and never blocks shutdown on
// a full tick channel.
type roundTimer struct {
	stop chan struct{}
	once sync.Once
}

func (t *roundTimer) run(interval time.Duration, ticks chan<- time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			select {
			case ticks <- now:
			case <-t.stop:
				return
			}
		case <-t.stop:
			return
		}
	}
}

func (t *roundTimer) Stop() {
	t.once.Do(func() { close(t.stop) })
}
