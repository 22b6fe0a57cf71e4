package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kng194/kng-rnd/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient(&config.LLMConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		Model:          "gemini-test",
		RequestTimeout: 5 * time.Second,
	})
}

func TestGenerate_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Gunakan "},{"text":"bambu petung."}]}}]}`))
	})

	reply, err := c.Generate(context.Background(), "bahan apa?")
	require.NoError(t, err)
	assert.Equal(t, "Gunakan bambu petung.", reply)
	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "bahan apa?", gotReq.Contents[0].Parts[0].Text)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	reply, err := c.Generate(context.Background(), "halo")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestGenerate_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	})

	_, err := c.Generate(context.Background(), "halo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestGenerate_InvalidBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.Generate(context.Background(), "halo")
	assert.Error(t, err)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	c := NewGeminiClient(&config.LLMConfig{BaseURL: "http://127.0.0.1:1", Model: "m"})

	_, err := c.Generate(context.Background(), "halo")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
