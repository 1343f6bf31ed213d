package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromImage(t *testing.T) {
	var gotPath string
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		assert.NotEmpty(t, req.Contents[0].Parts[1].InlineData.Data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Tomatoes 2kg"},{"text":" Spinach 1 bunch"}]}}]}`))
	}))
	defer server.Close()

	client := New(config.GeminiConfig{APIKey: "test-key"}, WithBaseURL(server.URL))
	text, err := client.ExtractTextFromImage(context.Background(), "gemini-1.5-flash", "read the list", "image/png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes 2kg Spinach 1 bunch", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestExtractTextFromImageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := New(config.GeminiConfig{APIKey: "test-key"}, WithBaseURL(server.URL))
	_, err := client.ExtractTextFromImage(context.Background(), "gemini-1.5-flash", "read", "image/png", []byte{0x01})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
}

func TestExtractTextFromImageEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := New(config.GeminiConfig{APIKey: "test-key"}, WithBaseURL(server.URL))
	_, err := client.ExtractTextFromImage(context.Background(), "gemini-1.5-flash", "read", "image/png", []byte{0x01})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestExtractTextFromImageUnconfigured(t *testing.T) {
	client := New(config.GeminiConfig{})
	_, err := client.ExtractTextFromImage(context.Background(), "gemini-1.5-flash", "read", "image/png", []byte{0x01})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
