package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ndjsonWriter writes one line at a time, flushing after each.
type ndjsonWriter struct{ w http.ResponseWriter }

func (nw ndjsonWriter) writeLine(line string) {
	_, _ = nw.w.Write([]byte(line + "\n"))
	if f, ok := nw.w.(http.Flusher); ok {
		f.Flush()
	}
}

func chunk(content string, done bool) string {
	var c chatChunk
	c.Message.Role = "assistant"
	c.Message.Content = content
	c.Done = done
	b, _ := json.Marshal(c)
	return string(b)
}

func TestClient_ChatStreams(t *testing.T) {
	var got chatRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/x-ndjson")
		nw := ndjsonWriter{w: w}
		nw.writeLine(chunk("math", false))
		time.Sleep(5 * time.Millisecond)
		nw.writeLine(chunk("203", false))
		nw.writeLine(chunk("", true))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL + "/"})
	out, err := c.Chat(context.Background(), "where does this go?")
	require.NoError(t, err)
	assert.Equal(t, "math203", out.Text)
	assert.Equal(t, 2, out.Fragments)

	assert.Equal(t, DefaultModel, got.Model)
	assert.True(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "where does this go?", got.Messages[0].Content)
}

func TestClient_ChatHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer ts.Close()

	_, err := NewClient(Config{BaseURL: ts.URL}).Chat(context.Background(), "p")
	require.Error(t, err)
	code, ok := IsStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_ChatTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nw := ndjsonWriter{w: w}
		for i := 0; i < 5; i++ {
			nw.writeLine(chunk("x", false))
			select {
			case <-r.Context().Done():
				return
			case <-time.After(200 * time.Millisecond):
			}
		}
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, RequestTimeout: 100 * time.Millisecond})
	_, err := c.Chat(context.Background(), "p")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_ChatConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewClient(Config{BaseURL: url, ConnectTimeout: time.Second}).Chat(context.Background(), "p")
	require.Error(t, err)
}

func TestClient_ModelsAndReady(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":" "},{"name":"phi3:latest"}]}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL})
	models, err := c.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:latest", "phi3:latest"}, models)
	assert.NoError(t, c.Ready(context.Background()))

	missing := NewClient(Config{BaseURL: ts.URL, Model: "mistral"})
	assert.Error(t, missing.Ready(context.Background()))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, DefaultRequestTimeout, c.reqTimeout)

	c = NewClient(Config{RequestTimeout: -1})
	assert.Zero(t, c.reqTimeout)
}
