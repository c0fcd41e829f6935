package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_SingleAttemptReturnsBareError(t *testing.T) {
	cause := errors.New("unreachable")
	err := Do(context.Background(), fastConfig(1), func() error {
		return cause
	})
	// With no retry budget the caller sees the original error unchanged.
	if !errors.Is(err, cause) {
		t.Fatalf("expected original error, got %v", err)
	}
	if err != cause {
		t.Errorf("expected unwrapped error, got %v", err)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("still failing")
	calls := 0
	err := Do(context.Background(), fastConfig(4), func() error {
		calls++
		return cause
	})
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestDoWithLog_ReportsFailedAttempts(t *testing.T) {
	logged := 0
	_ = DoWithLog(context.Background(), fastConfig(3), "transcription", func() error {
		return errors.New("boom")
	}, func(attempt int, err error, nextDelay time.Duration) {
		logged++
	})
	// The final attempt is not logged, only the ones followed by a sleep.
	if logged != 2 {
		t.Errorf("expected 2 logged attempts, got %d", logged)
	}
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(3), func() error {
		return errors.New("should not matter")
	})
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfig_WithAttempts(t *testing.T) {
	cfg := DefaultConfig().WithAttempts(0)
	if cfg.MaxAttempts != 1 {
		t.Errorf("expected clamp to 1, got %d", cfg.MaxAttempts)
	}
	if DefaultConfig().WithAttempts(5).MaxAttempts != 5 {
		t.Error("expected override to 5")
	}
}
