package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestInitialLoadRunsBothConcurrently(t *testing.T) {
	var mu sync.Mutex
	inFlight := 0
	sawOverlap := false

	track := func() RefreshFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			inFlight++
			if inFlight == 2 {
				sawOverlap = true
			}
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil
		}
	}

	s := New(time.Minute, track(), track())
	s.InitialLoad(context.Background())

	if !sawOverlap {
		t.Error("Expected config and leaderboard loads to overlap")
	}
}

func TestInitialLoadToleratesFailures(t *testing.T) {
	boardCalled := false
	s := New(time.Minute,
		func(ctx context.Context) error {
			boardCalled = true
			return errors.New("board failed")
		},
		func(ctx context.Context) error {
			return errors.New("config failed")
		},
	)

	// Must return despite both refreshes failing.
	s.InitialLoad(context.Background())
	if !boardCalled {
		t.Error("Leaderboard refresh never triggered")
	}
}

func TestRunRefreshesOnInterval(t *testing.T) {
	var calls atomic.Int32
	s := New(10*time.Millisecond,
		func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
		func(ctx context.Context) error { return nil },
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	time.Sleep(55 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	if got := calls.Load(); got < 2 {
		t.Errorf("Expected at least 2 scheduled refreshes, got %d", got)
	}
}

func TestRunKeepsTickingAfterFailures(t *testing.T) {
	var calls atomic.Int32
	s := New(10*time.Millisecond,
		func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("always failing")
		},
		func(ctx context.Context) error { return nil },
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	time.Sleep(45 * time.Millisecond)
	if got := calls.Load(); got < 2 {
		t.Errorf("Expected schedule to continue after failures, got %d calls", got)
	}
}
