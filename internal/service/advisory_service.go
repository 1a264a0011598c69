package service

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/advisory"
	"github.com/spec-kit/dominion-roster/internal/domain"
	apperrors "github.com/spec-kit/dominion-roster/pkg/util/errorutil"
)

// Fixed user-facing texts; service failures are absorbed, never propagated.
const (
	FallbackUnavailable = "AI 連結中斷，請稍後再試。"
	FallbackEmpty       = "目前無法產生戰略建議。"
)

// AdvisoryService requests a one-line strategic summary of the roster. At
// most one analysis runs at a time; a request arriving while one is in
// flight is rejected, never queued.
type AdvisoryService struct {
	generator advisory.Generator
	logger    *zap.Logger
	analyzing atomic.Bool
}

// NewAdvisoryService builds the service. A nil generator (no API key
// configured) makes every analysis answer with the fallback text.
func NewAdvisoryService(generator advisory.Generator, logger *zap.Logger) *AdvisoryService {
	return &AdvisoryService{generator: generator, logger: logger}
}

// Analyzing reports whether an analysis is currently in flight.
func (s *AdvisoryService) Analyzing() bool {
	return s.analyzing.Load()
}

// Analyze builds the roster summary, calls the model and returns its text.
// Any service failure yields a fixed fallback string with a nil error.
func (s *AdvisoryService) Analyze(ctx context.Context, members []domain.Member) (string, error) {
	if len(members) == 0 {
		return "", apperrors.NewValidationError("roster is empty", nil)
	}
	if !s.analyzing.CompareAndSwap(false, true) {
		return "", apperrors.NewConflict("analysis already in flight", nil)
	}
	defer s.analyzing.Store(false)

	if s.generator == nil {
		return FallbackUnavailable, nil
	}

	prompt, err := advisory.BuildPrompt(advisory.BuildSummary(members))
	if err != nil {
		s.logger.Warn("advisory prompt build failed", zap.Error(err))
		return FallbackUnavailable, nil
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisory generation failed", zap.Error(err))
		return FallbackUnavailable, nil
	}
	if strings.TrimSpace(text) == "" {
		return FallbackEmpty, nil
	}
	return text, nil
}
