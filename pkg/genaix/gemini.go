package genaix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/taskden/taskden/pkg/slogx"
)

const (
	// DefaultBaseURL is the Gemini REST endpoint root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTimeout bounds a single upstream call. The model is the only
	// collaborator that can hang a request, so every attempt gets a deadline.
	DefaultTimeout = 30 * time.Second

	// maxRetries bounds transient-failure retries per Ask call.
	maxRetries = 2
)

// GeminiClient calls the Gemini generateContent REST API.
type GeminiClient struct {
	APIKey  string
	Model   string        // defaults to DefaultModel
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // per-attempt deadline, defaults to DefaultTimeout

	// HTTPClient may be overridden in tests. Timeouts are applied per
	// request context, not on the client.
	HTTPClient *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Ask sends the prompt to the model and returns the raw text of the first
// candidate. Transient failures (429, 5xx, network) are retried with
// exponential backoff up to maxRetries; everything else fails immediately.
func (c *GeminiClient) Ask(ctx context.Context, prompt string, schema *Schema) (string, error) {
	log := slogx.FromContext(ctx)

	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if schema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrUpstream, err)
	}

	var text string
	operation := func() error {
		var opErr error
		text, opErr = c.doAttempt(ctx, payload)
		return opErr
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		log.Warn("generative model call retrying", "err", err, "wait", wait)
	}); err != nil {
		return "", err
	}

	return text, nil
}

func (c *GeminiClient) doAttempt(ctx context.Context, payload []byte) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("%w: %w", ErrUpstream, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		// Network failures and deadline hits are worth another attempt.
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	default:
		return "", backoff.Permanent(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", backoff.Permanent(fmt.Errorf("%w: decode response: %w", ErrUpstream, err))
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", backoff.Permanent(fmt.Errorf("%w: no candidates returned", ErrUpstream))
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func (c *GeminiClient) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	return base + "/v1beta/models/" + url.PathEscape(model) + ":generateContent"
}
