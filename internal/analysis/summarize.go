package analysis

import (
	"context"
	"log/slog"
	"strings"
)

// Summary is a plain-English explanation of a policy plus the flags it raises.
type Summary struct {
	Text  string   `json:"summary"`
	Flags []string `json:"flags"`
}

// Summarizer explains a policy text.
type Summarizer interface {
	Summarize(ctx context.Context, policyText string) (Summary, error)
}

// keywordRule raises flag when any of keywords appears in the policy.
type keywordRule struct {
	flag     string
	keywords []string
	sentence string
}

var keywordRules = []keywordRule{
	{
		flag:     FlagThirdPartySharing,
		keywords: []string{"third", "partner", "provider"},
		sentence: " It may share data with third parties.",
	},
	{
		flag:     FlagMarketing,
		keywords: []string{"marketing", "promotional", "offers"},
		sentence: " Data may be used for marketing.",
	},
	{
		flag: FlagLongTermRetention,
		keywords: []string{
			"retain",
			"as long as necessary",
			"after termination",
			"legal requirements",
			"business requirements",
		},
		sentence: " Your data may be retained long-term, even after service ends.",
	},
}

// KeywordSummarizer flags policies by keyword matching. It never fails.
type KeywordSummarizer struct{}

// Summarize implements Summarizer.
func (KeywordSummarizer) Summarize(_ context.Context, policyText string) (Summary, error) {
	lower := strings.ToLower(policyText)
	s := Summary{
		Text:  "This app collects and uses your data.",
		Flags: []string{},
	}
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				s.Flags = append(s.Flags, rule.flag)
				s.Text += rule.sentence
				break
			}
		}
	}
	return s, nil
}

// Fallback tries Primary and falls back to Secondary on error.
type Fallback struct {
	Primary   Summarizer
	Secondary Summarizer
	Logger    *slog.Logger
}

// Summarize implements Summarizer.
func (f Fallback) Summarize(ctx context.Context, policyText string) (Summary, error) {
	s, err := f.Primary.Summarize(ctx, policyText)
	if err == nil {
		return s, nil
	}
	if f.Logger != nil {
		f.Logger.Warn("summarizer failed, using fallback", "error", err)
	}
	return f.Secondary.Summarize(ctx, policyText)
}

// normalizeFlags lowercases flags and drops unknown and duplicate ones.
func normalizeFlags(flags []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, f := range flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if seen[f] || !isKnownFlag(f) {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func isKnownFlag(f string) bool {
	for _, k := range KnownFlags {
		if k == f {
			return true
		}
	}
	return false
}
