// Package genaix is a thin bridge to an external generative model. It
// forwards a prompt plus an optional output schema and hands back raw text;
// structured interpretation of that text lives in DecodeStrict so callers
// never assume the upstream returned valid JSON.
package genaix

import (
	"context"
	"errors"
)

var (
	// ErrUpstream covers provider failures: HTTP errors, timeouts, empty
	// candidate lists. Callers surface it as a generic AI service error.
	ErrUpstream = errors.New("genaix: upstream model failure")

	// ErrBadResponse reports model output that failed strict structured
	// parsing against the requested schema.
	ErrBadResponse = errors.New("genaix: malformed structured response")
)

// Client is anything that can ask a generative model for text. A nil schema
// requests free-form prose; a non-nil schema requests JSON conforming to it,
// though the response must still be treated as untrusted until decoded.
type Client interface {
	Ask(ctx context.Context, prompt string, schema *Schema) (string, error)
}

// Schema is the subset of OpenAPI-style response schemas the Gemini
// generateContent API accepts. It doubles as the source for strict response
// validation, see DecodeStrict.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}
