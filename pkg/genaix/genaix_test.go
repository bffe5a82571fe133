package genaix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

var subtaskSchema = &Schema{
	Type: "array",
	Items: &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"text": {Type: "string"},
		},
		Required: []string{"text"},
	},
}

func candidateResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(body)
}

func TestAskReturnsCandidateText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "gemini-2.5-flash")

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Equal(t, "user", req.Contents[0].Role)
		require.NotNil(t, req.GenerationConfig)
		require.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		_, _ = w.Write([]byte(candidateResponse(`[{"text":"step one"}]`)))
	}))
	t.Cleanup(srv.Close)

	client := &GeminiClient{APIKey: "test-key", BaseURL: srv.URL}
	text, err := client.Ask(context.Background(), "Generate subtasks", subtaskSchema)
	require.NoError(t, err)
	require.Equal(t, `[{"text":"step one"}]`, text)
}

func TestAskRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(candidateResponse("recovered")))
	}))
	t.Cleanup(srv.Close)

	client := &GeminiClient{APIKey: "test-key", BaseURL: srv.URL}
	text, err := client.Ask(context.Background(), "hello", nil)
	require.NoError(t, err)
	require.Equal(t, "recovered", text)
	require.Equal(t, int32(2), calls.Load())
}

func TestAskDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	client := &GeminiClient{APIKey: "test-key", BaseURL: srv.URL}
	_, err := client.Ask(context.Background(), "hello", nil)
	require.ErrorIs(t, err, ErrUpstream)
	require.Equal(t, int32(1), calls.Load())
}

func TestAskEmptyCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := &GeminiClient{APIKey: "test-key", BaseURL: srv.URL}
	_, err := client.Ask(context.Background(), "hello", nil)
	require.ErrorIs(t, err, ErrUpstream)
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	type subtask struct {
		Text string `json:"text"`
	}

	t.Run("valid payload decodes", func(t *testing.T) {
		var out []subtask
		err := DecodeStrict(`[{"text":"buy milk"},{"text":"drink it"}]`, subtaskSchema, &out)
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.Equal(t, "buy milk", out[0].Text)
	})

	t.Run("prose is rejected", func(t *testing.T) {
		var out []subtask
		err := DecodeStrict("Sure! Here are your subtasks:", subtaskSchema, &out)
		require.ErrorIs(t, err, ErrBadResponse)
	})

	t.Run("schema violation is rejected", func(t *testing.T) {
		var out []subtask
		err := DecodeStrict(`[{"label":"wrong key"}]`, subtaskSchema, &out)
		require.ErrorIs(t, err, ErrBadResponse)
	})

	t.Run("wrong top-level shape is rejected", func(t *testing.T) {
		var out []subtask
		err := DecodeStrict(`{"text":"not an array"}`, subtaskSchema, &out)
		require.ErrorIs(t, err, ErrBadResponse)
	})
}
