package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func fastPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), nil, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("err=%v calls=%d, want nil/1", err, calls)
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(error) bool { return true }, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(err error) bool { return errors.Is(err, errTransient) }, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("err = %v, want permanent error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoExhaustsPolicy(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(error) bool { return true }, func() error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Errorf("err = %v, want last transient error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoNilTransientNeverRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(4), nil, func() error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) || calls != 1 {
		t.Errorf("err=%v calls=%d, want transient/1", err, calls)
	}
}

func TestDoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: time.Second, Multiplier: 1}, func(error) bool { return true }, func() error {
		calls++
		cancel()
		return errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDelayCapped(t *testing.T) {
	p := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, Multiplier: 2}
	if d := p.delay(0); d != 100*time.Millisecond {
		t.Errorf("delay(0) = %v", d)
	}
	if d := p.delay(1); d != 200*time.Millisecond {
		t.Errorf("delay(1) = %v", d)
	}
	if d := p.delay(5); d != 300*time.Millisecond {
		t.Errorf("delay(5) = %v, want cap", d)
	}
}
