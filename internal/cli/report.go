package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sprite-ai/consentlens/internal/model"
)

type renderFunc func(io.Writer, *model.AnalysisResult) error

var renderers = map[string]renderFunc{
	"text":     writeText,
	"json":     writeJSON,
	"markdown": writeMarkdown,
}

func levelLabel(r *model.AnalysisResult) string {
	if r.RiskLevel == "" {
		return "Unknown"
	}
	return r.RiskLevel
}

func writeText(w io.Writer, r *model.AnalysisResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.App)
	fmt.Fprintf(&b, "Risk: %s (%s)\n\n", levelLabel(r), r.Score())

	fmt.Fprintf(&b, "Plain-English Summary\n  %s\n\n", r.PlainEnglishSummary)

	b.WriteString("Why this matters\n")
	reasons := r.Reasons()
	if len(reasons) == 0 {
		b.WriteString("  No specific concerns reported.\n")
	}
	for _, reason := range reasons {
		fmt.Fprintf(&b, "  - %s\n", reason)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, r *model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeMarkdown(w io.Writer, r *model.AnalysisResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", r.App)
	fmt.Fprintf(&b, "**Risk:** %s | **Score:** %s\n\n", levelLabel(r), r.Score())
	fmt.Fprintf(&b, "### Plain-English Summary\n\n%s\n\n", r.PlainEnglishSummary)

	b.WriteString("### Why this matters\n\n")
	reasons := r.Reasons()
	if len(reasons) == 0 {
		b.WriteString("No specific concerns reported.\n")
	}
	for _, reason := range reasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
