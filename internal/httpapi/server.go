package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"folderd/internal/classifier"
	"folderd/pkg/types"
)

// Analyzer defines the classification call required by the HTTP API layer.
// Implementations must not fail: every request gets a folder name.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalyzeRequest) types.AnalyzeResponse
}

// NewMux returns the public API router. It serves a single route,
// POST /analyze.
func NewMux(svc Analyzer) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}
	r.Use(MetricsMiddleware)

	r.Post("/analyze", analyzeHandler(svc))
	return r
}

// analyzeHandler godoc
//
//	@Summary		Suggest a folder for a file
//	@Description	Asks the language model for the best folder for the file. Upstream failures and empty answers yield "Uncategorized" with status 200.
//	@Tags			analyze
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.AnalyzeRequest	true	"File to classify"
//	@Success		200		{object}	types.AnalyzeResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Router			/analyze [post]
func analyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// Oversized bodies also land here; keep the message generic.
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		zl := requestLogger(r)
		if lvl >= LevelInfo {
			if zl != nil {
				z := zl.Info().Str("filename", req.Filename).Int("files", len(req.Files))
				if lvl >= LevelDebug {
					z = z.Int("content_len", len(req.Content)).Int("legacy_folders", len(req.Folders))
				}
				z.Msg("analyze start")
			} else {
				log.Printf("analyze start filename=%q files=%d", req.Filename, len(req.Files))
			}
		}

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if analyzeTimeout > 0 {
			var tcancel context.CancelFunc
			ctx, tcancel = context.WithTimeout(ctx, analyzeTimeout)
			defer tcancel()
		}
		if zl != nil {
			ctx = zl.WithContext(ctx)
		}

		resp := svc.Analyze(ctx, req)
		if resp.Folder == "" {
			resp.Folder = classifier.Fallback
		}
		writeJSON(w, http.StatusOK, resp)

		if lvl >= LevelInfo {
			if zl != nil {
				zl.Info().Str("status", "200").Str("folder", resp.Folder).Dur("dur", time.Since(start)).Msg("analyze end")
			} else {
				log.Printf("analyze end status=200 folder=%q dur=%s", resp.Folder, time.Since(start))
			}
		}
	}
}

func corsOptions() cors.Options {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodPost, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "X-Log-Level", "X-Request-Id"}
	}
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         300,
	}
}
