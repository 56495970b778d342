package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

func TestDeterministicPayloads(t *testing.T) {
	c := ForVendor("deepseek")
	ctx := context.Background()

	for _, fw := range analysis.Frameworks() {
		first, err := c.Analyze(ctx, fw, "prompt")
		require.NoError(t, err)
		second, err := c.Analyze(ctx, fw, "a completely different prompt")
		require.NoError(t, err)
		assert.Equal(t, first, second, "payload for %s must not vary", fw)
	}
}

func TestDeepSeekSWOTShape(t *testing.T) {
	c := ForVendor("deepseek")

	p, err := c.Analyze(context.Background(), analysis.FrameworkSWOT, "prompt")
	require.NoError(t, err)
	for _, key := range []string{"strengths", "weaknesses", "opportunities", "threats"} {
		items, ok := p[key].([]any)
		require.True(t, ok, "missing %s", key)
		assert.NotEmpty(t, items)

		entry, ok := items[0].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, entry, "factor")
		assert.Contains(t, entry, "impact")
		assert.Contains(t, entry, "confidence")
	}
}

func TestGenericFallbackLine(t *testing.T) {
	ctx := context.Background()

	deep, err := ForVendor("deepseek").Analyze(ctx, analysis.FrameworkUnitEconomics, "prompt")
	require.NoError(t, err)
	assert.Contains(t, deep["analysis"], "Unit Economics")

	gem, err := ForVendor("gemini").Analyze(ctx, analysis.FrameworkUnitEconomics, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Strong market validation with excellent timing.", gem["analysis"])
}

func TestVendorsDiffer(t *testing.T) {
	ctx := context.Background()

	deep, err := ForVendor("deepseek").Analyze(ctx, analysis.FrameworkSWOT, "prompt")
	require.NoError(t, err)
	gem, err := ForVendor("gemini").Analyze(ctx, analysis.FrameworkSWOT, "prompt")
	require.NoError(t, err)
	assert.NotEqual(t, deep, gem)
}

func TestName(t *testing.T) {
	assert.Equal(t, "deepseek", ForVendor("deepseek").Name())
	assert.Equal(t, "gemini", ForVendor("gemini").Name())
}
