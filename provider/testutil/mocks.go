// Package testutil provides mock providers for tests.
package testutil

import (
	"context"

	"lexarena/model"
)

// MockProvider implements model.Provider for testing.
type MockProvider struct {
	// ProposeFunc overrides the default canned response.
	ProposeFunc func(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult

	// CallCount tracks how many times Propose ran.
	CallCount int

	ID        string
	ModelName string
}

// NewMockProvider creates a mock that returns the given text with status ok.
func NewMockProvider(id, text string) *MockProvider {
	m := &MockProvider{ID: id, ModelName: "mock-model"}
	m.ProposeFunc = func(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult {
		return model.RawResult{CandidateID: id, Status: model.RawOK, Text: text}
	}
	return m
}

// Propose implements model.Provider.
func (m *MockProvider) Propose(ctx context.Context, messages []model.Message, maxTokens int) model.RawResult {
	m.CallCount++
	return m.ProposeFunc(ctx, messages, maxTokens)
}

// Kind implements model.Provider.
func (m *MockProvider) Kind() string { return "mock" }

// Model implements model.Provider.
func (m *MockProvider) Model() string { return m.ModelName }
