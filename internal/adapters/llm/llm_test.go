package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/smartqa/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_SelectsProvider(t *testing.T) {
	gen, err := New(config.AIConfig{Provider: config.ProviderMock}, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, gen)

	gen, err = New(config.AIConfig{Provider: config.ProviderAnthropic, AnthropicAPIKey: "k"}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, gen)
	assert.Equal(t, DefaultAnthropicModel, gen.(*AnthropicClient).model)

	gen, err = New(config.AIConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "k", Model: "local-model"}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "local-model", gen.(*OpenAIClient).model)
}

func TestNew_MissingKey(t *testing.T) {
	_, err := New(config.AIConfig{Provider: config.ProviderAnthropic}, discardLogger())
	assert.Error(t, err)

	_, err = New(config.AIConfig{Provider: config.ProviderOpenAI}, discardLogger())
	assert.Error(t, err)

	_, err = New(config.AIConfig{Provider: "gemini"}, discardLogger())
	assert.Error(t, err)
}

func TestAnthropicClient_Complete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"m",
			"content":[{"type":"text","text":"{\"test_scenarios\":[]}"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":5}}`)
	}))
	defer srv.Close()

	c := NewAnthropicClient("key", "m", srv.URL, discardLogger())
	out, err := c.Complete(context.Background(), "hello", 100)
	require.NoError(t, err)
	assert.Equal(t, `{"test_scenarios":[]}`, out)
	assert.EqualValues(t, 100, gotBody["max_tokens"])
}

func TestAnthropicClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"type":"error","error":{"type":"api_error","message":"boom"}}`)
	}))
	defer srv.Close()

	c := NewAnthropicClient("key", "m", srv.URL, discardLogger())
	_, err := c.Complete(context.Background(), "hello", 100)
	assert.Error(t, err)
}

func TestOpenAIClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"message":{"role":"assistant","content":"drafted"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	c := NewOpenAIClient("key", "m", srv.URL+"/", discardLogger())
	out, err := c.Complete(context.Background(), "hello", 50)
	require.NoError(t, err)
	assert.Equal(t, "drafted", out)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	c := NewOpenAIClient("key", "m", srv.URL, discardLogger())
	_, err := c.Complete(context.Background(), "hello", 50)
	assert.Error(t, err)
}
