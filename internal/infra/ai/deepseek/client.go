package deepseek

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	domai "github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/mock"
)

const (
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"

	systemPrompt   = "You are a professional business analyst. Provide detailed analysis in JSON format."
	requestTimeout = 60 * time.Second
	maxTokens      = 4000
	temperature    = 0.7
)

// Client adapts the DeepSeek chat completion API (OpenAI-compatible) to
// the provider contract. All failure modes downgrade to the mock path.
type Client struct {
	api      *openai.Client
	model    string
	demoMode bool
	mock     *mock.Client
}

func NewClient(apiKey, baseURL, model string, demoMode bool) *Client {
	c := &Client{
		model:    model,
		demoMode: demoMode,
		mock:     mock.ForVendor("deepseek"),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL == "" {
			baseURL = DefaultBaseURL
		}
		cfg.BaseURL = baseURL + "/v1"
		c.api = openai.NewClientWithConfig(cfg)
	}
	return c
}

func (c *Client) Name() string { return "deepseek" }

// Analyze calls the vendor once with a bounded timeout. Missing
// credentials, demo mode, transport errors and empty answers all fall
// back to the deterministic mock so one vendor outage cannot fail the
// surrounding analysis.
func (c *Client) Analyze(ctx context.Context, framework analysis.Framework, prompt string) (domai.Payload, error) {
	if c.demoMode || c.api == nil {
		return c.mock.Analyze(ctx, framework, prompt)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		log.Printf("deepseek analysis error: %v", err)
		return c.mock.Analyze(ctx, framework, prompt)
	}
	if len(resp.Choices) == 0 {
		log.Printf("deepseek returned no choices")
		return c.mock.Analyze(ctx, framework, prompt)
	}

	return parsePayload(resp.Choices[0].Message.Content), nil
}

// parsePayload decodes the model answer as JSON; non-JSON answers are
// wrapped rather than dropped.
func parsePayload(content string) domai.Payload {
	var payload domai.Payload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domai.Payload{"analysis": content, "raw_response": true}
	}
	return payload
}
