package hal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSystemClockSleepUntil(t *testing.T) {
	var c SystemClock
	start := c.Now()
	if err := c.SleepUntil(context.Background(), start.Add(5*time.Millisecond)); err != nil {
		t.Fatalf("SleepUntil: %v", err)
	}
	if c.Now().Sub(start) < 5*time.Millisecond {
		t.Fatal("woke early")
	}
	if err := c.SleepUntil(context.Background(), start); err != nil {
		t.Fatalf("past deadline: %v", err)
	}
}

func TestSystemClockSleepCancelled(t *testing.T) {
	var c SystemClock
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.SleepUntil(ctx, c.Now().Add(time.Hour))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
