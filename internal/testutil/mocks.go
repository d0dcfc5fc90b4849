// Package testutil provides hand-written mocks for the service's injected
// collaborators.
package testutil

import (
	"context"
	"sync"

	"github.com/LegendarySumit/TruthShield/internal/model"
)

// MockFactChecker is a scriptable FactChecker implementation.
type MockFactChecker struct {
	CheckFunc func(ctx context.Context, text string) (*model.Verdict, error)

	mu        sync.Mutex
	CallCount int
	LastText  string
}

func (m *MockFactChecker) Check(ctx context.Context, text string) (*model.Verdict, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, text)
	}
	// Default: remote path exhausted.
	return nil, nil
}

// Calls returns the number of times Check was invoked.
func (m *MockFactChecker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// MockLocalModel is a scriptable LocalModel implementation.
type MockLocalModel struct {
	ClassifyFunc func(text string) (*model.Verdict, error)

	mu        sync.Mutex
	CallCount int
	LastText  string
}

func (m *MockLocalModel) Classify(text string) (*model.Verdict, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(text)
	}
	return &model.Verdict{
		Prediction:  "Real",
		Confidence:  0.8,
		Explanation: "mock verdict",
	}, nil
}

// Calls returns the number of times Classify was invoked.
func (m *MockLocalModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
