package ollama

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// chatChunk is one NDJSON line of a streamed /api/chat response.
type chatChunk struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// Stream yields the text fragments of a streamed chat response in arrival
// order. It is single-pass: once Next returns false the stream is exhausted.
//
// Lines that are blank or do not decode to a chunk object are skipped.
type Stream struct {
	r         *bufio.Reader
	frag      string
	done      bool
	err       error
	malformed int
}

// NewStream wraps r, which must deliver newline-delimited JSON.
func NewStream(r io.Reader) *Stream {
	return &Stream{r: bufio.NewReader(r)}
}

// Next advances to the next non-empty fragment.
func (s *Stream) Next() bool {
	for !s.done {
		line, err := s.r.ReadString('\n')
		if err != nil {
			// Process whatever preceded the error; report it on the next call.
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var c chatChunk
		if jerr := json.Unmarshal([]byte(line), &c); jerr != nil {
			s.malformed++
			continue
		}
		if c.Error != "" {
			s.done = true
			s.err = &StreamError{Message: c.Error}
			return false
		}
		if c.Done {
			s.done = true
		}
		if c.Message.Content != "" {
			s.frag = c.Message.Content
			return true
		}
	}
	s.frag = ""
	return false
}

// Fragment returns the fragment produced by the last successful Next.
func (s *Stream) Fragment() string { return s.frag }

// Err returns the first non-EOF error that ended the stream.
func (s *Stream) Err() error { return s.err }

// Malformed returns the number of lines skipped because they failed to decode.
func (s *Stream) Malformed() int { return s.malformed }

// Completion is the folded result of a Stream.
type Completion struct {
	Text      string
	Fragments int
	Malformed int
}

// ReadCompletion drains a chat stream and concatenates its fragments.
// On error the partial completion read so far is returned with it.
func ReadCompletion(r io.Reader) (Completion, error) {
	s := NewStream(r)
	var b strings.Builder
	var n int
	for s.Next() {
		b.WriteString(s.Fragment())
		n++
	}
	return Completion{Text: b.String(), Fragments: n, Malformed: s.Malformed()}, s.Err()
}
