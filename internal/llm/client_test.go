package llm

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

func TestCompleteSuccess(t *testing.T) {
	var gotReq completionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}],"usage":{"total_tokens":42}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	out, err := c.Complete(context.Background(), Request{
		Feature:     "chat",
		Model:       "gpt-4o",
		System:      "You are helpful.",
		User:        "Hi",
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
	assert.Equal(t, 2000, gotReq.MaxTokens)
}

func TestCompleteForwardsUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	_, err := c.Complete(context.Background(), Request{Feature: "estimate", Model: "gpt-4o"})
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
	assert.Contains(t, ue.Body, "rate limited")
}

func TestCompleteMessagesHistory(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zap.NewNop())
	msgs := []Message{
		ChatSystemMessage("Project A: margin 52%"),
		{Role: "user", Content: "How did Project A do?"},
		{Role: "assistant", Content: "It hit the target."},
		{Role: "user", Content: "And Project B?"},
	}
	out, err := c.CompleteMessages(context.Background(), "chat", "gpt-4o", msgs, ChatTemperature, ChatMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	require.Len(t, gotReq.Messages, 4)
	assert.Contains(t, gotReq.Messages[0].Content, "CURRENT PROJECTS DATA")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", zap.NewNop())
	_, err := c.Complete(context.Background(), Request{Feature: "chat", Model: "gpt-4o"})
	assert.Error(t, err)
}

func TestGenerateTasksUserPromptTruncates(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}
	p := GenerateTasksUserPrompt(string(long), "")
	assert.LessOrEqual(t, len(p), GenerateTasksInputLimit+len("Project offer:\n\n\nGenerate Jira tasks JSON."))
	assert.Contains(t, p, "Generate Jira tasks JSON.")
}
