package httpapi

import "time"

const defaultMaxBodyBytes int64 = 1 << 20

// maxBodyBytes caps the /analyze request body.
var maxBodyBytes = defaultMaxBodyBytes

// SetMaxBodyBytes sets the body cap; non-positive restores the 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
		return
	}
	maxBodyBytes = n
}

// analyzeTimeout bounds a whole /analyze request. Zero means no bound beyond
// the upstream client's own request timeout.
var analyzeTimeout time.Duration

// SetAnalyzeTimeout sets the per-request bound (negative disables).
func SetAnalyzeTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	analyzeTimeout = d
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
