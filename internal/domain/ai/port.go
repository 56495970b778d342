package ai

import (
	"context"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// Payload is the structured result of one provider call. When the vendor
// answer is not valid JSON the payload carries the raw text under
// "analysis" plus "raw_response": true.
type Payload map[string]any

// Client is the capability contract every provider adapter satisfies.
// The framework id rides along so the mock path can dispatch on it
// explicitly instead of sniffing the prompt text; live adapters only
// send the prompt.
type Client interface {
	Name() string
	Analyze(ctx context.Context, framework analysis.Framework, prompt string) (Payload, error)
}
