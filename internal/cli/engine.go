package cli

import (
	"log/slog"
	"os"

	"github.com/sprite-ai/consentlens/internal/analysis"
	"github.com/sprite-ai/consentlens/internal/client"
	"github.com/sprite-ai/consentlens/internal/config"
	"github.com/sprite-ai/consentlens/internal/form"
)

// newEngine builds the local analysis engine from the server config. The
// LLM summarizer is used only when a model is configured and its API key is
// present; the keyword summarizer always backs it up.
func newEngine(cfg *config.Config, logger *slog.Logger) *analysis.Engine {
	var summarizer analysis.Summarizer = analysis.KeywordSummarizer{}

	llm := cfg.Server.LLM
	if llm.Model != "" {
		if key := os.Getenv(llm.APIKeyEnv); key != "" {
			summarizer = analysis.Fallback{
				Primary:   analysis.NewLLMSummarizer(key, llm.BaseURL, llm.Model, llm.Timeout),
				Secondary: analysis.KeywordSummarizer{},
				Logger:    logger,
			}
			logger.Info("LLM summarizer enabled", "model", llm.Model)
		} else {
			logger.Warn("LLM model configured but API key not set; using keyword summarizer",
				"model", llm.Model, "api_key_env", llm.APIKeyEnv)
		}
	}

	return analysis.New(
		analysis.WithRules(analysis.DefaultRules().Merge(cfg.Server.Rules)),
		analysis.WithSummarizer(summarizer),
		analysis.WithLogger(logger),
	)
}

// newAnalyzer returns the remote client, or the local engine when offline.
func newAnalyzer(cfg *config.Config, offline bool, logger *slog.Logger) form.Analyzer {
	if offline {
		return newEngine(cfg, logger)
	}
	return client.New(cfg.Service.URL,
		client.WithTimeout(cfg.Service.Timeout),
		client.WithLogger(logger),
	)
}
