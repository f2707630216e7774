package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const maxTokens = 512

const systemPrompt = `You are a consent transparency AI.

Tasks:
1. Explain the privacy policy in ONE simple sentence.
2. Identify risks ONLY from this list:
   - third_party_sharing
   - marketing
   - long_term_retention

Rules:
- third_party_sharing: data shared with partners, vendors, insurers, etc.
- marketing: promotions, offers, advertising, communication
- long_term_retention: data kept "as long as necessary",
  "for legal/business reasons", or "after termination"

Return ONLY valid JSON:
{"summary": "...", "flags": ["flag1", "flag2"]}`

// LLMSummarizer asks an OpenAI-compatible chat model to summarize a policy.
type LLMSummarizer struct {
	client *openai.Client
	model  string
}

// NewLLMSummarizer creates a summarizer. baseURL may be empty to use the
// OpenAI API; a zero timeout leaves requests unbounded.
func NewLLMSummarizer(apiKey, baseURL, model string, timeout time.Duration) *LLMSummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &LLMSummarizer{client: openai.NewClientWithConfig(cfg), model: model}
}

// Summarize implements Summarizer.
func (s *LLMSummarizer) Summarize(ctx context.Context, policyText string) (Summary, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Privacy Policy:\n" + policyText},
		},
		MaxTokens: maxTokens,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Summary{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Summary{}, errors.New("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")

	var out Summary
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return Summary{}, fmt.Errorf("decoding model output: %w", err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return Summary{}, errors.New("model output has no summary")
	}
	out.Flags = normalizeFlags(out.Flags)
	return out, nil
}
