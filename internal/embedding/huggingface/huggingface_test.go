package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsrag/internal/domain"
)

type recorded struct {
	path   string
	auth   string
	inputs []string
}

func newServer(t *testing.T, reply string, rec *recorded) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		var body featureRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		rec.inputs = body.Inputs

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Embed(t *testing.T) {
	tests := []struct {
		name  string
		query string
		reply string
	}{
		{name: "single line", query: "What skills should CS curricula emphasize?", reply: `[[0.25, -0.5, 0.75]]`},
		{name: "newlines kept", query: "line one\nline two", reply: `[[0.25, -0.5, 0.75]]`},
		{name: "bare vector", query: "hello", reply: `[0.25, -0.5, 0.75]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorded
			server := newServer(t, tt.reply, &rec)

			c, err := NewClient(Config{URL: server.URL + "/hf-inference", Token: "hf-test", Model: "intfloat/multilingual-e5-large"})
			require.NoError(t, err)

			vec, err := c.Embed(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, []float32{0.25, -0.5, 0.75}, vec)
			assert.Equal(t, "/hf-inference/models/intfloat/multilingual-e5-large/pipeline/feature-extraction", rec.path)
			assert.Equal(t, "Bearer hf-test", rec.auth)
			assert.Equal(t, []string{tt.query}, rec.inputs)
		})
	}
}

func TestClient_EmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model is loading"}`))
	}))
	defer server.Close()

	c, err := NewClient(Config{URL: server.URL, Token: "hf-test", Model: "m"})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.Contains(t, err.Error(), "model is loading")
}

func TestClient_EmbedEmptyResponse(t *testing.T) {
	var rec recorded
	server := newServer(t, `[]`, &rec)

	c, err := NewClient(Config{URL: server.URL, Token: "hf-test", Model: "m"})
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrProvider)
}

func TestNewClient_MissingToken(t *testing.T) {
	_, err := NewClient(Config{URL: "http://localhost", Model: "m"})
	require.ErrorIs(t, err, domain.ErrConfig)
}
