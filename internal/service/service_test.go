package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/LegendarySumit/TruthShield/internal/cache"
	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/service"
	"github.com/LegendarySumit/TruthShield/internal/testutil"
)

func remoteVerdict() *model.Verdict {
	return &model.Verdict{Prediction: "Real", Confidence: 0.9, Explanation: "checked against known facts"}
}

func TestVerifyEmptyText(t *testing.T) {
	checker := &testutil.MockFactChecker{}
	local := &testutil.MockLocalModel{}
	svc := service.New(checker, local, cache.New(10))

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Verify(context.Background(), text)
		if !errors.Is(err, service.ErrEmptyText) {
			t.Errorf("Verify(%q) = %v, want ErrEmptyText", text, err)
		}
	}

	if checker.Calls() != 0 || local.Calls() != 0 {
		t.Error("empty input must not reach either analysis path")
	}
}

func TestVerifyRemotePrimary(t *testing.T) {
	checker := &testutil.MockFactChecker{
		CheckFunc: func(ctx context.Context, text string) (*model.Verdict, error) {
			return remoteVerdict(), nil
		},
	}
	local := &testutil.MockLocalModel{}
	svc := service.New(checker, local, cache.New(10))

	v, err := svc.Verify(context.Background(), "some claim")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if v.Prediction != "Real" {
		t.Errorf("verdict = %+v", v)
	}
	if local.Calls() != 0 {
		t.Error("local model must not run when the remote path succeeds")
	}
}

func TestVerifyFallbackWhenRemoteExhausted(t *testing.T) {
	checker := &testutil.MockFactChecker{} // default: (nil, nil) = exhausted
	local := &testutil.MockLocalModel{
		ClassifyFunc: func(text string) (*model.Verdict, error) {
			return &model.Verdict{Prediction: "Fake", Confidence: 0.85, Explanation: "style looks fabricated"}, nil
		},
	}
	svc := service.New(checker, local, cache.New(10))

	v, err := svc.Verify(context.Background(), "some claim")
	if err != nil {
		t.Fatalf("Verify failed with working fallback: %v", err)
	}
	if v.Prediction != "Fake" {
		t.Errorf("verdict = %+v", v)
	}
	if !strings.Contains(v.Explanation, "AI fact-check was unavailable") {
		t.Errorf("fallback explanation must flag the unavailable remote path: %q", v.Explanation)
	}
	if checker.Calls() != 1 || local.Calls() != 1 {
		t.Errorf("calls: remote %d local %d, want 1/1", checker.Calls(), local.Calls())
	}
}

func TestVerifyTotalFailure(t *testing.T) {
	tests := []struct {
		name    string
		checker service.FactChecker
		local   service.LocalModel
	}{
		{name: "no paths at all", checker: nil, local: nil},
		{name: "remote exhausted, no local", checker: &testutil.MockFactChecker{}, local: nil},
		{
			name:    "remote exhausted, local errors",
			checker: &testutil.MockFactChecker{},
			local: &testutil.MockLocalModel{
				ClassifyFunc: func(string) (*model.Verdict, error) {
					return nil, errors.New("corrupt artifact")
				},
			},
		},
		{
			name:    "remote exhausted, local panics",
			checker: &testutil.MockFactChecker{},
			local: &testutil.MockLocalModel{
				ClassifyFunc: func(string) (*model.Verdict, error) {
					panic("index out of range")
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.New(tt.checker, tt.local, cache.New(10))
			_, err := svc.Verify(context.Background(), "some claim")
			if !errors.Is(err, service.ErrUnavailable) {
				t.Errorf("Verify = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestVerifyCacheHit(t *testing.T) {
	checker := &testutil.MockFactChecker{
		CheckFunc: func(ctx context.Context, text string) (*model.Verdict, error) {
			return remoteVerdict(), nil
		},
	}
	local := &testutil.MockLocalModel{}
	svc := service.New(checker, local, cache.New(10))

	first, err := svc.Verify(context.Background(), "repeated claim")
	if err != nil {
		t.Fatalf("first Verify failed: %v", err)
	}
	second, err := svc.Verify(context.Background(), "repeated claim")
	if err != nil {
		t.Fatalf("second Verify failed: %v", err)
	}

	if first != second {
		t.Errorf("cached verdict differs: %+v vs %+v", first, second)
	}
	if checker.Calls() != 1 {
		t.Errorf("remote path ran %d times, want 1 (second call is a cache hit)", checker.Calls())
	}
	if local.Calls() != 0 {
		t.Error("local path should never run here")
	}
}

func TestVerifyFailedRequestsNotCached(t *testing.T) {
	checker := &testutil.MockFactChecker{}
	svc := service.New(checker, nil, cache.New(10))

	if _, err := svc.Verify(context.Background(), "some claim"); !errors.Is(err, service.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	// A retry must consult the remote path again, not a cached failure.
	svc.Verify(context.Background(), "some claim")
	if checker.Calls() != 2 {
		t.Errorf("remote path ran %d times, want 2", checker.Calls())
	}
}

func TestVerifyContextCancellation(t *testing.T) {
	checker := &testutil.MockFactChecker{
		CheckFunc: func(ctx context.Context, text string) (*model.Verdict, error) {
			return nil, ctx.Err()
		},
	}
	local := &testutil.MockLocalModel{}
	svc := service.New(checker, local, cache.New(10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Verify(ctx, "some claim"); err == nil {
		t.Error("cancelled context should surface an error")
	}
	if local.Calls() != 0 {
		t.Error("fallback must not run for a cancelled caller")
	}
}

func TestServiceDegradedModeReporting(t *testing.T) {
	svc := service.New(nil, &testutil.MockLocalModel{}, nil)
	if svc.RemoteConfigured() {
		t.Error("RemoteConfigured should be false without a checker")
	}
	if !svc.LocalLoaded() {
		t.Error("LocalLoaded should be true with a local model")
	}
}
