package ollama

import "errors"

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "ollama http error: " + e.Status
	}
	return "ollama http error: " + e.Status + ": " + e.Body
}

// StatusCode returns the upstream HTTP status.
func (e *StatusError) StatusCode() int { return e.Code }

// StreamError carries an error the server reported inside the stream.
type StreamError struct{ Message string }

func (e *StreamError) Error() string { return "ollama stream error: " + e.Message }

// IsStatus reports whether err is a StatusError, returning its code.
func IsStatus(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}
