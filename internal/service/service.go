// Package service composes the two inference paths behind one API: the AI
// fact-check is primary, the local style ensemble is the fallback, and a
// bounded cache short-circuits repeated inputs. Failures inside either path
// become "try next strategy" signals; only full exhaustion reaches the
// caller.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/LegendarySumit/TruthShield/internal/cache"
	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/textnorm"
)

var (
	// ErrEmptyText rejects empty or whitespace-only input before either
	// analysis path runs.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrUnavailable signals that no path produced a result; the caller
	// should retry later.
	ErrUnavailable = errors.New("no classification path available, try again later")
)

// fallbackNotice prefixes local-path explanations so consumers know which
// path produced the verdict.
const fallbackNotice = "AI fact-check was unavailable; this verdict comes from the local style-analysis model. "

// FactChecker is the primary (remote) inference path. A (nil, nil) return
// means every remote attempt failed and the fallback should run.
type FactChecker interface {
	Check(ctx context.Context, text string) (*model.Verdict, error)
}

// LocalModel is the fallback inference path.
type LocalModel interface {
	Classify(text string) (*model.Verdict, error)
}

// Service is the request-facing classifier. Either path may be nil; at
// least one must be present for requests to succeed.
type Service struct {
	checker FactChecker
	local   LocalModel
	cache   *cache.VerdictCache
}

// New assembles a Service. checker and local may each be nil, which puts
// the service in the corresponding degraded mode.
func New(checker FactChecker, local LocalModel, c *cache.VerdictCache) *Service {
	if c == nil {
		c = cache.New(0)
	}
	return &Service{checker: checker, local: local, cache: c}
}

// RemoteConfigured reports whether the AI fact-check path is available.
func (s *Service) RemoteConfigured() bool {
	return s.checker != nil
}

// LocalLoaded reports whether the fallback model is loaded.
func (s *Service) LocalLoaded() bool {
	return s.local != nil
}

// NormalizerVersion reports the normalization contract the service runs.
func (s *Service) NormalizerVersion() string {
	return textnorm.Version
}

// Verify classifies text, consulting the cache, then the AI fact-check,
// then the local model.
func (s *Service) Verify(ctx context.Context, text string) (model.Verdict, error) {
	if strings.TrimSpace(text) == "" {
		return model.Verdict{}, ErrEmptyText
	}

	if v, ok := s.cache.Get(text); ok {
		return v, nil
	}

	if s.checker != nil {
		v, err := s.checker.Check(ctx, text)
		if err != nil {
			// Only parent-context cancellation comes back as an error;
			// there is no point consulting the fallback for a caller
			// that is gone.
			return model.Verdict{}, err
		}
		if v != nil {
			s.cache.Put(text, *v)
			return *v, nil
		}
	}

	if s.local != nil {
		v, err := s.localAttempt(text)
		if err != nil {
			log.Printf("[ERROR] service: local fallback failed: %v", err)
		} else {
			v.Explanation = fallbackNotice + v.Explanation
			s.cache.Put(text, *v)
			return *v, nil
		}
	}

	return model.Verdict{}, ErrUnavailable
}

// localAttempt isolates the local model call so an unexpected panic inside
// transform/predict degrades into a failed fallback attempt instead of
// killing the request.
func (s *Service) localAttempt(text string) (v *model.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("local model panic: %v", r)
		}
	}()
	return s.local.Classify(text)
}
