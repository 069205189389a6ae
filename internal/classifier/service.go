package classifier

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"folderd/internal/ollama"
	"folderd/pkg/types"
)

// Fallback is returned whenever no folder name could be obtained.
const Fallback = "Uncategorized"

// Chatter runs a single-message chat completion.
type Chatter interface {
	Chat(ctx context.Context, prompt string) (ollama.Completion, error)
}

// Service picks a folder for a file by asking a language model.
type Service struct {
	chat Chatter
	log  zerolog.Logger
}

// NewService returns a Service backed by chat.
func NewService(chat Chatter, log zerolog.Logger) *Service {
	return &Service{chat: chat, log: log}
}

// Analyze never fails: upstream errors and empty output both yield Fallback.
func (s *Service) Analyze(ctx context.Context, req types.AnalyzeRequest) types.AnalyzeResponse {
	l := s.logger(ctx)
	prompt := BuildPrompt(req.Filename, req.Content, KnownFolders(req))

	start := time.Now()
	out, err := s.chat.Chat(ctx, prompt)
	upstreamDuration.Observe(time.Since(start).Seconds())
	upstreamFragments.Observe(float64(out.Fragments))
	if out.Malformed > 0 {
		upstreamMalformedLines.Add(float64(out.Malformed))
	}

	if err != nil {
		outcome := errorOutcome(err)
		classifyTotal.WithLabelValues(outcome).Inc()
		l.Warn().Err(err).Str("outcome", outcome).Str("filename", req.Filename).Msg("classification failed, using fallback")
		return types.AnalyzeResponse{Folder: Fallback}
	}

	folder := strings.TrimSpace(out.Text)
	if folder == "" {
		classifyTotal.WithLabelValues(outcomeEmpty).Inc()
		l.Info().Str("filename", req.Filename).Int("fragments", out.Fragments).Msg("empty model output, using fallback")
		return types.AnalyzeResponse{Folder: Fallback}
	}
	classifyTotal.WithLabelValues(outcomeOK).Inc()
	l.Debug().Str("filename", req.Filename).Str("folder", folder).Msg("classified")
	return types.AnalyzeResponse{Folder: folder}
}

// logger prefers the request-scoped logger carried by ctx.
func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	}
	if _, ok := ollama.IsStatus(err); ok {
		return outcomeUpstreamStatus
	}
	return outcomeUpstreamError
}
