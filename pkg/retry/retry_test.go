package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestOnce_SuccessFirstTry(t *testing.T) {
	calls := 0
	err := Once(context.Background(), time.Millisecond, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestOnce_RetriesExactlyOnce(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := Once(context.Background(), time.Millisecond, func(context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestOnce_SecondTrySucceeds(t *testing.T) {
	calls := 0
	err := Once(context.Background(), time.Millisecond, func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestOnce_CancellationBeatsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Once(ctx, time.Hour, func(context.Context) error {
		calls++
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry after cancel)", calls)
	}
}
