package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakeServer(t *testing.T, captured *map[string]any, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   "test",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": reply}, "finish_reason": "stop"}},
			"usage":   map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateSendsSystemAndUserMessages(t *testing.T) {
	var body map[string]any
	srv := fakeServer(t, &body, "An outline")

	c := NewClient(Options{Name: "openai", APIKey: "k", BaseURL: srv.URL + "/v1/", Model: "gpt-test", MaxTokens: 2048}, zap.NewNop())
	out, err := c.Generate(context.Background(), "Chapter: Intro", "You are an assistant")
	require.NoError(t, err)
	assert.Equal(t, "An outline", out)

	assert.Equal(t, "gpt-test", body["model"])
	assert.EqualValues(t, 2048, body["max_completion_tokens"])
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "Chapter: Intro", msgs[1].(map[string]any)["content"])
}

func TestGenerateLocalUsesMaxTokens(t *testing.T) {
	var body map[string]any
	srv := fakeServer(t, &body, "ok")

	c := NewClient(Options{Name: "local", BaseURL: srv.URL + "/v1", Model: "llama3", MaxTokens: 100, Local: true}, zap.NewNop())
	_, err := c.Generate(context.Background(), "hi", "")
	require.NoError(t, err)

	assert.EqualValues(t, 100, body["max_tokens"])
	assert.NotContains(t, body, "max_completion_tokens")
	assert.Len(t, body["messages"].([]any), 1)
}

func TestGenerateEmptyReplyIsError(t *testing.T) {
	var body map[string]any
	srv := fakeServer(t, &body, "")

	c := NewClient(Options{Name: "openai", APIKey: "k", BaseURL: srv.URL + "/v1", Model: "m"}, zap.NewNop())
	_, err := c.Generate(context.Background(), "hi", "sys")
	assert.Error(t, err)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{Name: "openai", APIKey: "k", BaseURL: srv.URL + "/v1", Model: "m"}, zap.NewNop())
	_, err := c.Generate(context.Background(), "hi", "sys")
	assert.Error(t, err)
}
