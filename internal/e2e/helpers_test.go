package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"folderd/internal/classifier"
	"folderd/internal/httpapi"
	"folderd/internal/ollama"
	"folderd/pkg/types"
)

// newServer wires the real client, classifier and router against ollamaURL.
func newServer(t *testing.T, ollamaURL, model string, timeout time.Duration) *httptest.Server {
	t.Helper()
	client := ollama.NewClient(ollama.Config{
		BaseURL:        ollamaURL,
		Model:          model,
		RequestTimeout: timeout,
	})
	svc := classifier.NewService(client, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

// ndjsonServer streams lines to /api/chat, flushing after each one.
func ndjsonServer(t *testing.T, lines ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		fl, _ := w.(http.Flusher)
		for _, l := range lines {
			_, _ = io.WriteString(w, l+"\n")
			if fl != nil {
				fl.Flush()
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postAnalyze(t *testing.T, base string, req types.AnalyzeRequest) (int, types.AnalyzeResponse) {
	t.Helper()
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	hreq, err := http.NewRequestWithContext(context.Background(), http.MethodPost, base+"/analyze", bytes.NewReader(payload))
	require.NoError(t, err)
	hreq.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(hreq)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out types.AnalyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}
