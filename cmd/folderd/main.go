package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"folderd/internal/classifier"
	"folderd/internal/httpapi"
	"folderd/internal/ollama"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "folderd:", err)
		os.Exit(1)
	}
}

// run serves until ctx is canceled or SIGINT/SIGTERM arrives.
func run(ctx context.Context, o options, log zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(o.logLevel)
	httpapi.SetMaxBodyBytes(o.maxBodyBytes)
	httpapi.SetAnalyzeTimeout(o.analyzeTimeout)
	httpapi.SetCORSOptions(o.corsEnabled, o.corsOrigins, o.corsMethods, o.corsHeaders)
	httpapi.SetBaseContext(ctx)

	client := ollama.NewClient(ollama.Config{
		BaseURL:        o.ollamaURL,
		Model:          o.model,
		RequestTimeout: o.upstreamTimeout,
		ConnectTimeout: o.connectTimeout,
		Logger:         &log,
	})
	svc := classifier.NewService(client, log.With().Str("component", "classifier").Logger())

	servers := []*http.Server{{
		Addr:              o.addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if o.adminAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              o.adminAddr,
			Handler:           httpapi.NewAdminMux(client),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	// Bind before logging so a busy port fails fast.
	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		go func(srv *http.Server, ln net.Listener) {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
		}(srv, ln)
	}
	log.Info().
		Str("addr", o.addr).
		Str("admin_addr", o.adminAddr).
		Str("ollama_url", o.ollamaURL).
		Str("model", client.Model()).
		Dur("upstream_timeout", o.upstreamTimeout).
		Msg("folderd listening")

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case serveErr = <-errCh:
		log.Error().Err(serveErr).Msg("server error")
	}

	// Graceful shutdown
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Str("addr", srv.Addr).Msg("graceful shutdown error")
		}
	}
	return serveErr
}
