// Package analysis implements the consent analysis engine: a summarizer
// explains the policy and raises flags, then permissions and flags are
// scored against weighted rules.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sprite-ai/consentlens/internal/model"
)

// ErrEmptyPolicy is returned when there is no policy text to analyze.
var ErrEmptyPolicy = errors.New("policy_text is required")

// Engine analyzes consent requests.
type Engine struct {
	rules      Rules
	summarizer Summarizer
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the scoring rules.
func WithRules(r Rules) Option {
	return func(e *Engine) { e.rules = r }
}

// WithSummarizer replaces the summarizer.
func WithSummarizer(s Summarizer) Option {
	return func(e *Engine) { e.summarizer = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine with the default rules and the keyword summarizer.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:      DefaultRules(),
		summarizer: KeywordSummarizer{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze summarizes and scores req.
func (e *Engine) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	if strings.TrimSpace(req.PolicyText) == "" {
		return nil, ErrEmptyPolicy
	}

	summary, err := e.summarizer.Summarize(ctx, req.PolicyText)
	if err != nil {
		return nil, fmt.Errorf("summarizing policy: %w", err)
	}

	score, level, reasons := e.rules.Score(req.Permissions, summary.Flags)

	e.logger.Debug("consent analyzed",
		"app", req.AppName,
		"permissions", len(req.Permissions),
		"flags", strings.Join(summary.Flags, ","),
		"score", score,
		"level", level.String(),
	)

	return &model.AnalysisResult{
		App:                 req.AppName,
		PlainEnglishSummary: summary.Text,
		RiskLevel:           level.String(),
		RiskScore:           float64(score),
		WhyItMatters:        reasons,
	}, nil
}
