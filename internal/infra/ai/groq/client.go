package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/infra/ai/prompt"
)

// Fixed call configuration; not exposed to callers.
const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
	temperature    = 0.7
	maxTokens      = 1024
)

// Client talks to Groq through its OpenAI-compatible chat endpoint.
type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cfg.BaseURL = baseURL
	if model == "" {
		model = defaultModel
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Augment asks the model for engagement insight on the extracted text.
// One attempt, no retry; every failure mode wraps ErrAugmentationFailed so
// the pipeline can downgrade it.
func (c *Client) Augment(ctx context.Context, text string) (*domain.Insight, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt.Engagement(text)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAugmentationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model returned no choices", domain.ErrAugmentationFailed)
	}

	return ParseInsight(resp.Choices[0].Message.Content)
}

// ParseInsight turns a raw model reply into an Insight. The reply may be
// wrapped in markdown code fences; those are removed before parsing, and all
// four keys must be present.
func ParseInsight(raw string) (*domain.Insight, error) {
	cleaned := stripFences(raw)

	var reply struct {
		Sentiment       *string  `json:"sentiment"`
		ClarityScore    *float64 `json:"clarityScore"`
		Suggestions     []string `json:"suggestions"`
		ImprovedCaption *string  `json:"improvedCaption"`
	}
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return nil, fmt.Errorf("%w: parse model reply: %v", domain.ErrAugmentationFailed, err)
	}

	switch {
	case reply.Sentiment == nil:
		return nil, fmt.Errorf("%w: reply missing sentiment", domain.ErrAugmentationFailed)
	case reply.ClarityScore == nil:
		return nil, fmt.Errorf("%w: reply missing clarityScore", domain.ErrAugmentationFailed)
	case reply.Suggestions == nil:
		return nil, fmt.Errorf("%w: reply missing suggestions", domain.ErrAugmentationFailed)
	case reply.ImprovedCaption == nil:
		return nil, fmt.Errorf("%w: reply missing improvedCaption", domain.ErrAugmentationFailed)
	}

	return &domain.Insight{
		Sentiment:       *reply.Sentiment,
		ClarityScore:    *reply.ClarityScore,
		Suggestions:     reply.Suggestions,
		ImprovedCaption: *reply.ImprovedCaption,
	}, nil
}

func stripFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
