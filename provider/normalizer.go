package provider

import (
	"encoding/json"
	"fmt"
)

// chatEnvelope mirrors the OpenAI-compatible chat-completions response shape
// used by OpenRouter and similar gateways. Only the fields the normalizer
// reads are declared; everything else is ignored.
type chatEnvelope struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// NormalizeEnvelope extracts the generated text from a raw chat-completions
// response body.
//
// Some hosted models return their answer in the message's "reasoning" field
// and leave "content" empty; the normalizer falls back to it so that one
// vendor's envelope quirk never surfaces as a structural error downstream.
// The returned diagnostic names the field the text came from, or describes
// why nothing was extractable. The text is "" (never some sentinel) when
// extraction fails.
//
// ok is false for envelopes that are not valid JSON or have no choices;
// callers map that to model.RawMalformedEnvelope.
func NormalizeEnvelope(body []byte) (text, diagnostic string, ok bool) {
	var env chatEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Sprintf("envelope is not valid JSON: %v; body prefix: %s", err, clip(string(body))), false
	}
	if env.Error != nil {
		return "", fmt.Sprintf("provider error in envelope: %s", env.Error.Message), false
	}
	if len(env.Choices) == 0 {
		return "", fmt.Sprintf("envelope has no choices; body prefix: %s", clip(string(body))), false
	}

	msg := env.Choices[0].Message
	if msg.Content != "" {
		return msg.Content, "content field", true
	}
	if msg.Reasoning != "" {
		return msg.Reasoning, "reasoning field (content was empty)", true
	}
	return "", "both content and reasoning fields empty", true
}
