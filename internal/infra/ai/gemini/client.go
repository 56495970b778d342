package gemini

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"google.golang.org/genai"

	domai "github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
	"github.com/Najnomics/business-analysis-ai-V2/internal/infra/ai/mock"
)

const (
	DefaultModel = "gemini-1.5-pro"

	requestTimeout = 60 * time.Second
)

// Client adapts Google's Gemini API to the provider contract via the
// genai SDK. Same failure semantics as the deepseek adapter: everything
// downgrades to the mock path.
type Client struct {
	api      *genai.Client
	model    string
	demoMode bool
	mock     *mock.Client
}

func NewClient(ctx context.Context, apiKey, model string, demoMode bool) *Client {
	c := &Client{
		model:    model,
		demoMode: demoMode,
		mock:     mock.ForVendor("gemini"),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if apiKey != "" {
		api, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			log.Printf("failed to initialize gemini: %v", err)
		} else {
			c.api = api
		}
	}
	return c
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Analyze(ctx context.Context, framework analysis.Framework, prompt string) (domai.Payload, error) {
	if c.demoMode || c.api == nil {
		return c.mock.Analyze(ctx, framework, prompt)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.Models.GenerateContent(ctx, c.model,
		genai.Text("You are a business analyst. Provide JSON analysis for: "+prompt), nil)
	if err != nil {
		log.Printf("gemini analysis error: %v", err)
		return c.mock.Analyze(ctx, framework, prompt)
	}

	content := resp.Text()
	if content == "" {
		log.Printf("gemini returned empty response")
		return c.mock.Analyze(ctx, framework, prompt)
	}

	var payload domai.Payload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domai.Payload{"analysis": content, "raw_response": true}, nil
	}
	return payload, nil
}
