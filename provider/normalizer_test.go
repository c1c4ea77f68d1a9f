package provider

import (
	"strings"
	"testing"
)

func TestNormalizeEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantOK   bool
		wantDiag string
	}{
		{
			name:     "content in the standard field",
			body:     `{"choices":[{"message":{"content":"{\"word\":\"CAT\"}"}}]}`,
			wantText: `{"word":"CAT"}`,
			wantOK:   true,
			wantDiag: "content field",
		},
		{
			name:     "content hiding in the reasoning field",
			body:     `{"choices":[{"message":{"content":"","reasoning":"the move is CAT"}}]}`,
			wantText: "the move is CAT",
			wantOK:   true,
			wantDiag: "reasoning field",
		},
		{
			name:     "both fields empty",
			body:     `{"choices":[{"message":{"content":""}}]}`,
			wantText: "",
			wantOK:   true,
			wantDiag: "empty",
		},
		{
			name:   "no choices",
			body:   `{"choices":[]}`,
			wantOK: false,
		},
		{
			name:   "error envelope",
			body:   `{"error":{"message":"model overloaded","code":503}}`,
			wantOK: false,
		},
		{
			name:   "not JSON at all",
			body:   `<html>bad gateway</html>`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, diag, ok := NormalizeEnvelope([]byte(tt.body))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (diag: %s)", ok, tt.wantOK, diag)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if tt.wantDiag != "" && !strings.Contains(diag, tt.wantDiag) {
				t.Errorf("diagnostic %q does not mention %q", diag, tt.wantDiag)
			}
		})
	}
}

func TestNormalizeEnvelopeNeverReturnsNilText(t *testing.T) {
	// Failed extraction must yield "", not a sentinel, so downstream code
	// can treat the text uniformly.
	text, _, _ := NormalizeEnvelope([]byte(`{"choices":null}`))
	if text != "" {
		t.Errorf("text = %q, want empty string", text)
	}
}
