package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestEveryRunsImmediatelyAndOnTicks(t *testing.T) {
	var runs atomic.Int32

	s := New(nil)
	s.Every("counter", 20*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.After(time.Second)
	for runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("runs = %d after 1s, want >= 3", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestPanicDoesNotKillJob(t *testing.T) {
	var runs atomic.Int32

	s := New(nil)
	s.Every("flaky", 10*time.Millisecond, func(ctx context.Context) {
		if runs.Add(1) == 1 {
			panic("first run explodes")
		}
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.After(time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("job did not survive panic, runs = %d", runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(stopCtx)
}

func TestStopCancelsJobContext(t *testing.T) {
	cancelled := make(chan struct{})

	s := New(nil)
	s.Every("waiter", time.Hour, func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	})

	s.Start(context.Background())

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	select {
	case <-cancelled:
	default:
		t.Error("job context was not cancelled on Stop")
	}
}

func TestUntilNext(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		hour   int
		minute int
		want   time.Duration
	}{
		{"later today", 9, 0, 30 * time.Minute},
		{"tomorrow", 8, 0, 23*time.Hour + 30*time.Minute},
		{"exactly now rolls over", 8, 30, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := untilNext(now, tt.hour, tt.minute); got != tt.want {
				t.Errorf("untilNext = %v, want %v", got, tt.want)
			}
		})
	}
}
