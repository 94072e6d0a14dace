package hal

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// maxCatchUp bounds how many ticks one wake-up may replay before the schedule
// is re-anchored.
const maxCatchUp = 4096

var errTimerRunning = errors.New("timer: already running")

type softTimer struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewPeriodicTimer returns a goroutine-driven PeriodicTimer. When the host
// scheduler wakes late, the callbacks that fell due are run back to back.
func NewPeriodicTimer() PeriodicTimer {
	return &softTimer{}
}

func (t *softTimer) Start(interval time.Duration, fn func()) error {
	if interval <= 0 {
		return fmt.Errorf("timer: invalid interval %v", interval)
	}
	if fn == nil {
		return errors.New("timer: nil callback")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return errTimerRunning
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop, t.done = stop, done

	go func() {
		defer close(done)
		next := time.Now().Add(interval)
		wake := time.NewTimer(interval)
		defer wake.Stop()
		for {
			select {
			case <-stop:
				return
			case <-wake.C:
			}
			var n int
			n, next = due(next, time.Now(), interval, maxCatchUp)
			for i := 0; i < n; i++ {
				fn()
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			wake.Reset(wait)
		}
	}()
	return nil
}

func (t *softTimer) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// due reports how many ticks are due at now given the pending deadline next,
// and returns the deadline that follows them. Deadlines stay on the
// next + k*interval grid unless more than limit ticks are overdue, in which
// case limit ticks are reported and the grid restarts at now.
func due(next, now time.Time, interval time.Duration, limit int) (int, time.Time) {
	if now.Before(next) {
		return 0, next
	}
	n := int(now.Sub(next)/interval) + 1
	if n > limit {
		return limit, now.Add(interval)
	}
	return n, next.Add(time.Duration(n) * interval)
}
