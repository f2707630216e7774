package form

import (
	"context"
	"errors"

	"github.com/sprite-ai/consentlens/internal/model"
)

// Analyzer performs one analysis of a consent request.
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error)
}

// Outcome is the completion event of one submission.
type Outcome struct {
	Seq    uint64
	Result *model.AnalysisResult
	Err    error
}

// Execute sends req through a and reports the completion of submission seq.
// Cancelling ctx aborts the request and yields a failed Outcome.
func Execute(ctx context.Context, a Analyzer, seq uint64, req model.AnalysisRequest) Outcome {
	result, err := a.Analyze(ctx, req)
	if err == nil && result == nil {
		err = errors.New("analyzer returned no result")
	}
	if err != nil {
		return Outcome{Seq: seq, Err: err}
	}
	return Outcome{Seq: seq, Result: result}
}

// Color is a named presentation color.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
)

// RiskColor maps a risk level to its display color. Unrecognized levels,
// including the empty string, are green.
func RiskColor(level string) Color {
	switch level {
	case "High":
		return ColorRed
	case "Medium":
		return ColorOrange
	default:
		return ColorGreen
	}
}
