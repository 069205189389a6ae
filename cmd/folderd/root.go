package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"folderd/internal/config"
	"folderd/internal/ollama"
)

// options are the resolved runtime settings.
type options struct {
	configPath      string
	addr            string
	adminAddr       string
	ollamaURL       string
	model           string
	upstreamTimeout time.Duration
	connectTimeout  time.Duration
	analyzeTimeout  time.Duration
	maxBodyBytes    int64
	logLevel        string
	logFormat       string
	corsEnabled     bool
	corsOrigins     []string
	corsMethods     []string
	corsHeaders     []string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "folderd",
		Short:         "Suggest a folder for a file using a local language model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.configPath != "" {
				cfg, err := config.Load(o.configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				applyConfig(o, cfg, cmd.Flags())
			}
			log, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			return run(cmd.Context(), *o, log)
		},
	}

	// Flags with environment variable defaults
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", envStr("FOLDERD_CONFIG", ""), "Config file (.yaml, .json or .toml); explicit flags win over it")
	f.StringVar(&o.addr, "addr", envStr("FOLDERD_ADDR", ":8000"), "HTTP listen address for the API, e.g. :8000")
	f.StringVar(&o.adminAddr, "admin-addr", envStr("FOLDERD_ADMIN_ADDR", ""), "Listen address for /healthz, /readyz and /metrics (empty disables)")
	f.StringVar(&o.ollamaURL, "ollama-url", envStr("FOLDERD_OLLAMA_URL", ollama.DefaultBaseURL), "Base URL of the Ollama server")
	f.StringVar(&o.model, "model", envStr("FOLDERD_MODEL", ollama.DefaultModel), "Model used for classification")
	f.DurationVar(&o.upstreamTimeout, "upstream-timeout", envDuration("FOLDERD_UPSTREAM_TIMEOUT", ollama.DefaultRequestTimeout), "Upper bound for one streamed chat call (negative disables)")
	f.DurationVar(&o.connectTimeout, "connect-timeout", envDuration("FOLDERD_CONNECT_TIMEOUT", ollama.DefaultConnectTimeout), "TCP connect timeout towards Ollama")
	f.DurationVar(&o.analyzeTimeout, "analyze-timeout", envDuration("FOLDERD_ANALYZE_TIMEOUT", 0), "Upper bound for a whole /analyze request (0 disables)")
	f.Int64Var(&o.maxBodyBytes, "max-body-bytes", envInt64("FOLDERD_MAX_BODY_BYTES", 1<<20), "Maximum /analyze request body size")
	f.StringVar(&o.logLevel, "log-level", envStr("FOLDERD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error|off")
	f.StringVar(&o.logFormat, "log-format", envStr("FOLDERD_LOG_FORMAT", "json"), "Log format: json|console")
	f.BoolVar(&o.corsEnabled, "cors-enabled", envBool("FOLDERD_CORS_ENABLED", false), "Enable CORS on the API")
	f.StringSliceVar(&o.corsOrigins, "cors-origins", envCSV("FOLDERD_CORS_ORIGINS", nil), "Allowed CORS origins (comma separated)")
	f.StringSliceVar(&o.corsMethods, "cors-methods", envCSV("FOLDERD_CORS_METHODS", nil), "Allowed CORS methods (comma separated)")
	f.StringSliceVar(&o.corsHeaders, "cors-headers", envCSV("FOLDERD_CORS_HEADERS", nil), "Allowed CORS headers (comma separated)")
	return cmd
}

// applyConfig copies non-zero config values into o for flags the user did
// not set explicitly.
func applyConfig(o *options, cfg config.Config, flags *pflag.FlagSet) {
	unset := func(name string) bool { return !flags.Changed(name) }
	if cfg.Addr != "" && unset("addr") {
		o.addr = cfg.Addr
	}
	if cfg.AdminAddr != "" && unset("admin-addr") {
		o.adminAddr = cfg.AdminAddr
	}
	if cfg.OllamaURL != "" && unset("ollama-url") {
		o.ollamaURL = cfg.OllamaURL
	}
	if cfg.Model != "" && unset("model") {
		o.model = cfg.Model
	}
	if cfg.UpstreamTimeout.Duration != 0 && unset("upstream-timeout") {
		o.upstreamTimeout = cfg.UpstreamTimeout.Duration
	}
	if cfg.ConnectTimeout.Duration != 0 && unset("connect-timeout") {
		o.connectTimeout = cfg.ConnectTimeout.Duration
	}
	if cfg.AnalyzeTimeout.Duration != 0 && unset("analyze-timeout") {
		o.analyzeTimeout = cfg.AnalyzeTimeout.Duration
	}
	if cfg.MaxBodyBytes != 0 && unset("max-body-bytes") {
		o.maxBodyBytes = cfg.MaxBodyBytes
	}
	if cfg.LogLevel != "" && unset("log-level") {
		o.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && unset("log-format") {
		o.logFormat = cfg.LogFormat
	}
	if cfg.CORS.Enabled && unset("cors-enabled") {
		o.corsEnabled = true
	}
	if len(cfg.CORS.Origins) > 0 && unset("cors-origins") {
		o.corsOrigins = cfg.CORS.Origins
	}
	if len(cfg.CORS.Methods) > 0 && unset("cors-methods") {
		o.corsMethods = cfg.CORS.Methods
	}
	if len(cfg.CORS.Headers) > 0 && unset("cors-headers") {
		o.corsHeaders = cfg.CORS.Headers
	}
}

// newLogger builds the process logger. "off" disables output entirely.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "off" {
		lvl = "disabled"
	}
	zl, err := zerolog.ParseLevel(lvl)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	switch strings.ToLower(format) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(w).Level(zl).With().Timestamp().Str("service", "folderd").Logger(), nil
}
