package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(url string, opts ...OpenAIOption) *OpenAIProvider {
	opts = append([]OpenAIOption{WithOpenAIBaseURL(url), WithOpenAIMaxRetries(0)}, opts...)
	return NewOpenAIProvider("sk-test", opts...)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	return raw
}

func TestOpenAIGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		req := decodeBody(t, r)
		assert.Equal(t, "gpt-test", req["model"])
		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)
		assert.Equal(t, map[string]any{"role": "system", "content": "You are a travel guide."}, msgs[0])
		assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
		assert.EqualValues(t, 250, req["max_tokens"])
		assert.InDelta(t, 0.7, req["temperature"], 0.001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  1. Paris, France\n"}}]}`))
	}))
	defer srv.Close()

	out, err := newTestProvider(srv.URL, WithOpenAIModel("gpt-test")).GenerateText(context.Background(), TextRequest{
		System:      "You are a travel guide.",
		Prompt:      "List exactly 2 cities",
		MaxTokens:   250,
		Temperature: Temp(0.7),
	})
	require.NoError(t, err)
	assert.Equal(t, "1. Paris, France", out)
}

func TestOpenAIGenerateTextOmitsSystemAndDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeBody(t, r)
		assert.NotContains(t, req, "max_tokens")
		assert.NotContains(t, req, "temperature")
		assert.Equal(t, DefaultOpenAIModel, req["model"])
		assert.Len(t, req["messages"], 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	out, err := newTestProvider(srv.URL).GenerateText(context.Background(), TextRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestOpenAIGenerateTextErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"api error status", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided"}}`},
		{"bare status", http.StatusBadGateway, `upstream`},
		{"malformed", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestProvider(srv.URL).GenerateText(context.Background(), TextRequest{Prompt: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "openai chat")

			var apiErr *openai.Error
			if tc.status != http.StatusOK {
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tc.status, apiErr.StatusCode)
			}
		})
	}
}

func TestOpenAIGenerateTextEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).GenerateText(context.Background(), TextRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		req := decodeBody(t, r)
		assert.EqualValues(t, 1, req["n"])
		assert.Equal(t, "512x512", req["size"])
		assert.Equal(t, "Visiting the Louvre, a scenic view of the main attractions.", req["prompt"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"url":"https://img.example/1.png"}]}`))
	}))
	defer srv.Close()

	url, err := newTestProvider(srv.URL, WithImageSize("512x512")).
		GenerateImage(context.Background(), "Visiting the Louvre, a scenic view of the main attractions.")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/1.png", url)
}

func TestOpenAIGenerateImageEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[]}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).GenerateImage(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "plain", stripCodeFence("  plain \n"))
	assert.Equal(t, "Day 1: Visit the Louvre", stripCodeFence("```\nDay 1: Visit the Louvre\n```"))
	assert.Equal(t, "Day 1", stripCodeFence("```markdown\nDay 1\n```"))
}
