package provider

import (
	"testing"

	"lexarena/model"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "ollama provider with defaults",
			config: Config{
				Kind: KindOllama,
			},
			expectError: false,
		},
		{
			name: "openai provider",
			config: Config{
				Kind:   KindOpenAI,
				Model:  "gpt-4o-mini",
				APIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "openai provider without key",
			config: Config{
				Kind:  KindOpenAI,
				Model: "gpt-4o-mini",
			},
			expectError: true,
		},
		{
			name: "anthropic provider",
			config: Config{
				Kind:   KindAnthropic,
				Model:  "claude-sonnet-4-5-20250929",
				APIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "openrouter provider",
			config: Config{
				Kind:   KindOpenRouter,
				Model:  "meta-llama/llama-3.3-70b-instruct",
				APIKey: "test-key",
			},
			expectError: false,
		},
		{
			name: "openrouter provider without key",
			config: Config{
				Kind:  KindOpenRouter,
				Model: "meta-llama/llama-3.3-70b-instruct",
			},
			expectError: true,
		},
		{
			name: "unknown provider kind",
			config: Config{
				Kind: Kind("unknown"),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.config)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if p != nil {
					t.Error("expected nil provider on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var _ model.Provider = p
		})
	}
}

func TestMapKind(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
	}{
		{"openai", KindOpenAI},
		{"anthropic", KindAnthropic},
		{"openrouter", KindOpenRouter},
		{"ollama", KindOllama},
		{"something-else", Kind("something-else")},
	}
	for _, tt := range tests {
		if got := MapKind(tt.id); got != tt.want {
			t.Errorf("MapKind(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestUsesCompletionTokenParam(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"gpt-4o-mini", false},
		{"gpt-4.1", false},
		{"gpt-5-mini", true},
		{"o1-preview", true},
		{"o3", true},
		{"o4-mini", true},
	}
	for _, tt := range tests {
		if got := usesCompletionTokenParam(tt.model); got != tt.want {
			t.Errorf("usesCompletionTokenParam(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
