// Package mock holds the deterministic demo-mode payloads. Every live
// adapter falls back here when it has no credentials, when demo mode is
// on, or when the vendor call fails, so a provider outage can never fail
// a whole analysis.
package mock

import (
	"context"
	"fmt"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/ai"
	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// Client serves canned payloads for one vendor name. Dispatch is an
// explicit framework -> payload table, so the mock path is statically
// exhaustive and byte-identical across calls.
type Client struct {
	vendor string
	table  map[analysis.Framework]ai.Payload
}

// ForVendor returns the mock client for a vendor name. Vendors without a
// dedicated table get the deepseek-shaped payloads.
func ForVendor(vendor string) *Client {
	table := deepseekTable
	if vendor == "gemini" {
		table = geminiTable
	}
	return &Client{vendor: vendor, table: table}
}

func (c *Client) Name() string { return c.vendor }

// Analyze returns the canned payload for the framework; frameworks
// without a rich payload get a one-line generic analysis.
func (c *Client) Analyze(_ context.Context, framework analysis.Framework, _ string) (ai.Payload, error) {
	if p, ok := c.table[framework]; ok {
		return p, nil
	}
	return c.generic(framework), nil
}

func (c *Client) generic(framework analysis.Framework) ai.Payload {
	if c.vendor == "gemini" {
		return ai.Payload{"analysis": "Strong market validation with excellent timing."}
	}
	return ai.Payload{"analysis": fmt.Sprintf(
		"Comprehensive %s analysis completed with high confidence and strategic recommendations for business optimization and growth.",
		framework.DisplayName())}
}

func factor(text, impact string, confidence float64) map[string]any {
	return map[string]any{"factor": text, "impact": impact, "confidence": confidence}
}

var deepseekTable = map[analysis.Framework]ai.Payload{
	analysis.FrameworkSWOT: {
		"strengths": []any{
			factor("Growing environmental consciousness in target market", "high", 0.92),
			factor("Advanced AI-powered technology stack", "high", 0.85),
			factor("First-mover advantage in AI business analysis", "medium", 0.78),
			factor("Strong brand positioning and marketing approach", "medium", 0.80),
		},
		"weaknesses": []any{
			factor("High initial development and operational costs", "medium", 0.78),
			factor("Limited brand recognition in early stages", "medium", 0.82),
			factor("Dependency on external AI model providers", "medium", 0.75),
			factor("Complex technology requiring specialized talent", "low", 0.70),
		},
		"opportunities": []any{
			factor("Rapidly growing AI and automation market", "high", 0.89),
			factor("Strategic partnership opportunities with consulting firms", "medium", 0.77),
			factor("International expansion potential", "high", 0.83),
			factor("Enterprise market penetration", "high", 0.86),
		},
		"threats": []any{
			factor("Large tech companies entering the market", "high", 0.84),
			factor("Economic uncertainty affecting business spending", "medium", 0.71),
			factor("Rapid technological changes and AI evolution", "medium", 0.79),
			factor("Data privacy and security regulations", "medium", 0.76),
		},
	},
	analysis.FrameworkPESTEL: {
		"political": map[string]any{
			"factors":            []any{"Government AI regulations", "Data protection laws", "Innovation policies"},
			"impact_score":       7.2,
			"trend_direction":    "neutral",
			"key_considerations": []any{"GDPR compliance", "AI ethics regulations", "Government digitization initiatives"},
		},
		"economic": map[string]any{
			"factors":            []any{"Economic growth trends", "Business technology spending", "Inflation impact"},
			"impact_score":       6.8,
			"trend_direction":    "positive",
			"key_considerations": []any{"Digital transformation budgets", "Cost optimization needs", "ROI expectations"},
		},
		"social": map[string]any{
			"factors":            []any{"Digital adoption rates", "Remote work trends", "Skills gap in analysis"},
			"impact_score":       8.5,
			"trend_direction":    "positive",
			"key_considerations": []any{"Increased demand for automation", "Need for accessible analytics", "Workforce transformation"},
		},
		"technological": map[string]any{
			"factors":            []any{"AI advancement pace", "Cloud computing adoption", "Integration capabilities"},
			"impact_score":       9.0,
			"trend_direction":    "positive",
			"key_considerations": []any{"Rapid AI model improvements", "API ecosystem growth", "Real-time analytics demand"},
		},
		"environmental": map[string]any{
			"factors":            []any{"Sustainability reporting requirements", "Carbon footprint concerns", "Green technology focus"},
			"impact_score":       6.2,
			"trend_direction":    "positive",
			"key_considerations": []any{"ESG analysis integration", "Sustainable business practices", "Environmental impact assessment"},
		},
		"legal": map[string]any{
			"factors":            []any{"AI liability frameworks", "Intellectual property rights", "Consumer protection laws"},
			"impact_score":       7.5,
			"trend_direction":    "evolving",
			"key_considerations": []any{"AI transparency requirements", "Data ownership rights", "Liability for AI decisions"},
		},
	},
	analysis.FrameworkPorterFiveForces: {
		"competitive_rivalry": map[string]any{
			"intensity":               "Medium-High",
			"score":                   6.8,
			"key_competitors":         []any{"Traditional consulting firms", "AI analytics platforms", "Business intelligence tools"},
			"market_concentration":    "fragmented",
			"differentiation_factors": []any{"AI consensus approach", "Comprehensive framework coverage", "User-friendly interface"},
		},
		"threat_of_new_entrants": map[string]any{
			"intensity":         "High",
			"score":             7.5,
			"barriers_to_entry": []any{"Technology complexity", "Brand establishment", "Customer acquisition costs"},
			"entry_threats":     []any{"Big tech companies", "Specialized AI startups", "Consulting firm tech divisions"},
		},
		"supplier_power": map[string]any{
			"intensity":       "Medium",
			"score":           6.0,
			"key_suppliers":   []any{"AI model providers", "Cloud infrastructure", "Data sources"},
			"switching_costs": "Medium",
			"concentration":   "Moderate",
		},
		"buyer_power": map[string]any{
			"intensity":                "Medium",
			"score":                    5.5,
			"switching_costs":          "Low",
			"price_sensitivity":        "High",
			"information_availability": "High",
		},
		"threat_of_substitutes": map[string]any{
			"intensity":              "Medium-High",
			"score":                  7.0,
			"substitutes":            []any{"Traditional consulting", "In-house analysis teams", "Generic BI tools"},
			"switching_ease":         "Medium",
			"performance_comparison": "Competitive advantage in speed and comprehensiveness",
		},
	},
	analysis.FrameworkBusinessModelCanvas: {
		"customer_segments": []any{
			"Startup founders and entrepreneurs",
			"Small and medium business owners",
			"Business analysts and consultants",
			"Innovation teams in enterprises",
			"Investment analysts and VCs",
		},
		"value_propositions": []any{
			"Instant comprehensive business analysis",
			"AI-powered insights from multiple models",
			"25+ analytical frameworks in one platform",
			"Enterprise-grade analysis at affordable cost",
			"User-friendly interface requiring no technical expertise",
		},
		"channels": []any{
			"Direct web platform",
			"API integrations",
			"Partner consultancies",
			"Content marketing and SEO",
			"Industry events and webinars",
		},
		"customer_relationships": []any{
			"Self-service platform",
			"Community support forums",
			"Premium customer success management",
			"Educational content and tutorials",
			"Automated personalized recommendations",
		},
		"revenue_streams": []any{
			"Freemium subscription model",
			"Enterprise licensing fees",
			"API usage-based pricing",
			"Professional services and consulting",
			"White-label solutions for partners",
		},
		"key_activities": []any{
			"AI model integration and optimization",
			"Platform development and maintenance",
			"Customer acquisition and retention",
			"Content creation and education",
			"Strategic partnerships development",
		},
		"key_resources": []any{
			"AI technology stack and algorithms",
			"Proprietary analytical frameworks",
			"Customer data and insights",
			"Technical team and expertise",
			"Brand and intellectual property",
		},
		"key_partnerships": []any{
			"AI model providers (DeepSeek, Gemini)",
			"Cloud infrastructure providers",
			"Business consulting firms",
			"Educational institutions",
			"Industry associations and accelerators",
		},
		"cost_structure": []any{
			"AI model API costs",
			"Cloud infrastructure and hosting",
			"Software development and maintenance",
			"Customer acquisition and marketing",
			"Personnel and operational expenses",
		},
	},
}

var geminiTable = map[analysis.Framework]ai.Payload{
	analysis.FrameworkSWOT: {
		"strengths": []any{
			factor("Strong market demand", "high", 0.90),
			factor("Advanced AI technology", "high", 0.87),
		},
		"weaknesses": []any{
			factor("High operational costs", "medium", 0.80),
			factor("Limited brand portfolio", "medium", 0.75),
		},
		"opportunities": []any{
			factor("Expanding sustainable market", "high", 0.88),
			factor("Investor interest in ESG", "high", 0.84),
		},
		"threats": []any{
			factor("E-commerce competition", "high", 0.86),
			factor("Economic uncertainty", "medium", 0.74),
		},
	},
}
