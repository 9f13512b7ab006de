package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snakanz/adviceApp-sub002/pkg/config"
)

func newChatServer(t *testing.T, handler func(req map[string]interface{}) (int, interface{})) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		status, body := handler(payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestGenerator_Generate(t *testing.T) {
	var seen map[string]interface{}
	ts := newChatServer(t, func(req map[string]interface{}) (int, interface{}) {
		seen = req
		return http.StatusOK, map[string]interface{}{
			"id": "chatcmpl-1",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "  Pension review agreed.  "}},
			},
		}
	})
	defer ts.Close()

	g := NewGenerator(&config.GeneratorConfig{APIKey: "test-key", BaseURL: ts.URL + "/", Model: "test-model", MaxTokens: 100})
	require.True(t, g.Available())

	out, err := g.Generate(context.Background(), "summarise", GenerateOptions{System: "be brief", MaxTokens: 50})
	require.NoError(t, err)
	assert.Equal(t, "Pension review agreed.", out)

	assert.Equal(t, "test-model", seen["model"])
	assert.EqualValues(t, 50, seen["max_tokens"])
	messages, ok := seen["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestGenerator_ServerError(t *testing.T) {
	ts := newChatServer(t, func(req map[string]interface{}) (int, interface{}) {
		return http.StatusTooManyRequests, map[string]interface{}{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit"},
		}
	})
	defer ts.Close()

	g := NewGenerator(&config.GeneratorConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "m"})
	_, err := g.Generate(context.Background(), "prompt", GenerateOptions{})
	assert.Error(t, err)
}

func TestGenerator_HonoursContext(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	g := NewGenerator(&config.GeneratorConfig{APIKey: "test-key", BaseURL: ts.URL, Model: "m"})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.Generate(ctx, "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGenerator_Unavailable(t *testing.T) {
	g := NewGenerator(&config.GeneratorConfig{Model: "m"})
	assert.False(t, g.Available())

	_, err := g.Generate(context.Background(), "prompt", GenerateOptions{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
