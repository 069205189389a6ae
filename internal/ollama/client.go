package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultBaseURL        = "http://localhost:11434"
	DefaultModel          = "phi3"
	DefaultRequestTimeout = 60 * time.Second
	DefaultConnectTimeout = 5 * time.Second
)

// Config holds the tunables of a Client.
type Config struct {
	BaseURL string
	Model   string
	// RequestTimeout bounds a whole chat call including the streamed body.
	// Negative disables the bound; zero selects DefaultRequestTimeout.
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	Logger         *zerolog.Logger
}

// Client talks to an Ollama server over its native HTTP API.
type Client struct {
	baseURL    string
	model      string
	reqTimeout time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient constructs a Client, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	switch {
	case cfg.RequestTimeout == 0:
		cfg.RequestTimeout = DefaultRequestTimeout
	case cfg.RequestTimeout < 0:
		cfg.RequestTimeout = 0
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	l := zerolog.Nop()
	if cfg.Logger != nil {
		l = *cfg.Logger
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      strings.TrimSpace(cfg.Model),
		reqTimeout: cfg.RequestTimeout,
		// Deadlines come from the request context; see Chat.
		httpClient: &http.Client{Transport: tr, Timeout: 0},
		log:        l.With().Str("component", "ollama").Logger(),
	}
}

// Model returns the model name sent with every chat request.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// Chat sends prompt as a single user message with streaming enabled and
// returns the concatenated, untrimmed fragments.
func (c *Client) Chat(ctx context.Context, prompt string) (Completion, error) {
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		return Completion{}, fmt.Errorf("marshal chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Completion{}, ctx.Err()
		}
		return Completion{}, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Completion{}, newStatusError(resp)
	}

	out, err := ReadCompletion(resp.Body)
	if out.Malformed > 0 {
		c.log.Debug().Int("lines", out.Malformed).Msg("skipped malformed stream lines")
	}
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		var se *StreamError
		if errors.As(err, &se) {
			return out, err
		}
		return out, fmt.Errorf("read chat stream: %w", err)
	}
	c.log.Debug().
		Int("fragments", out.Fragments).
		Dur("dur", time.Since(start)).
		Msg("chat stream complete")
	return out, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Models lists the model names installed on the server.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp)
	}
	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if name := strings.TrimSpace(m.Name); name != "" {
			models = append(models, name)
		}
	}
	return models, nil
}

// Ready reports whether the server answers and has the configured model.
// Names are matched with and without Ollama's implicit ":latest" tag.
func (c *Client) Ready(ctx context.Context) error {
	models, err := c.Models(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		if m == c.model || strings.TrimSuffix(m, ":latest") == c.model {
			return nil
		}
	}
	return fmt.Errorf("model %q not installed", c.model)
}

func newStatusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{
		Code:   resp.StatusCode,
		Status: resp.Status,
		Body:   strings.TrimSpace(string(b)),
	}
}
