package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	config := Config{
		Attempts:  4,
		BaseDelay: 10 * time.Millisecond,
		MaxDelay:  100 * time.Millisecond,
		Timeout:   time.Second,
	}

	callCount := 0
	result, err := Do(context.Background(), config, func(ctx context.Context) (string, error) {
		callCount++
		return "success", nil
	})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %s", result)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestDoSucceedsAfterRetries(t *testing.T) {
	config := Config{
		Attempts:  4,
		BaseDelay: 10 * time.Millisecond,
		MaxDelay:  100 * time.Millisecond,
		Timeout:   time.Second,
	}

	callCount := 0
	result, err := Do(context.Background(), config, func(ctx context.Context) (string, error) {
		callCount++
		if callCount < 3 {
			return "", errors.New("temporary failure")
		}
		return "success", nil
	})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %s", result)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	config := Config{
		Attempts:  3,
		BaseDelay: 10 * time.Millisecond,
		MaxDelay:  100 * time.Millisecond,
		Timeout:   time.Second,
	}

	callCount := 0
	_, err := Do(context.Background(), config, func(ctx context.Context) (string, error) {
		callCount++
		return "", errors.New("persistent failure")
	})
	if err == nil {
		t.Error("Expected error, got nil")
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestDoContextCancellation(t *testing.T) {
	config := Config{
		Attempts:  6,
		BaseDelay: 50 * time.Millisecond,
		MaxDelay:  200 * time.Millisecond,
		Timeout:   time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())

	callCount := 0
	_, err := Do(ctx, config, func(ctx context.Context) (string, error) {
		callCount++
		if callCount == 2 {
			cancel()
		}
		return "", errors.New("failure")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if callCount > 3 {
		t.Errorf("Expected at most 3 calls after cancellation, got %d", callCount)
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	baseDelay := 10 * time.Millisecond
	maxDelay := 100 * time.Millisecond

	tests := []struct {
		attempt  int
		minDelay time.Duration
		maxBound time.Duration
	}{
		{0, 5 * time.Millisecond, 15 * time.Millisecond},
		{1, 10 * time.Millisecond, 30 * time.Millisecond},
		{2, 20 * time.Millisecond, 60 * time.Millisecond},
		{3, 40 * time.Millisecond, 100 * time.Millisecond},
		{10, 50 * time.Millisecond, 100 * time.Millisecond},
		{100, 50 * time.Millisecond, 100 * time.Millisecond}, // shift capped, no overflow
	}

	for _, test := range tests {
		for i := 0; i < 10; i++ {
			result := backoffDelay(test.attempt, baseDelay, maxDelay)
			if result < test.minDelay || result > test.maxBound {
				t.Errorf("backoffDelay(%d, %v, %v) = %v, expected between %v and %v",
					test.attempt, baseDelay, maxDelay, result, test.minDelay, test.maxBound)
			}
		}
	}
}
