package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

const watermarkText = "Created with Somna AI"

// report is the format-agnostic shape of one exported document. Every
// renderer walks the same structure so the three formats never drift.
type report struct {
	businessInput   string
	generatedAt     time.Time
	sections        []section
	consensusScore  float64
	recommendations []string
}

type section struct {
	title  string
	blocks []providerBlock
}

type providerBlock struct {
	provider string
	lines    []line
}

type line struct {
	text  string
	level int
	bold  bool
}

func buildReport(a *analysis.BusinessAnalysis) *report {
	r := &report{
		businessInput:   a.BusinessInput,
		generatedAt:     time.Now(),
		consensusScore:  a.Consensus.ConsensusScore,
		recommendations: a.Consensus.KeyRecommendations,
	}

	for _, fw := range analysis.Frameworks() {
		results, ok := a.Results[fw]
		if !ok {
			continue
		}
		sec := section{title: fw.DisplayName()}
		for _, provider := range providerOrder(a, results) {
			res, ok := results[provider]
			if !ok {
				continue
			}
			sec.blocks = append(sec.blocks, providerBlock{
				provider: titleize(provider),
				lines:    flattenPayload(res.Analysis),
			})
		}
		r.sections = append(r.sections, sec)
	}
	return r
}

// providerOrder keeps the consensus model order, then any stragglers.
func providerOrder(a *analysis.BusinessAnalysis, results analysis.FrameworkResults) []string {
	var order []string
	seen := map[string]bool{}
	for _, m := range a.Consensus.ModelsUsed {
		if _, ok := results[m]; ok {
			order = append(order, m)
			seen[m] = true
		}
	}
	var rest []string
	for p := range results {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// flattenPayload turns one model's analysis payload into display lines.
// Payloads that came through the document store arrive as primitive.M
// and primitive.A instead of plain maps and slices, so both shapes are
// accepted.
func flattenPayload(p map[string]any) []line {
	if raw, _ := p["raw_response"].(bool); raw {
		if s, ok := p["analysis"].(string); ok {
			return []line{{text: s}}
		}
	}

	var out []line
	for _, key := range sortedKeys(p) {
		if key == "raw_response" {
			continue
		}
		v := p[key]
		if items, ok := asSlice(v); ok {
			out = append(out, line{text: titleize(key) + ":", bold: true})
			for _, item := range items {
				out = append(out, line{text: formatItem(item), level: 1})
			}
			continue
		}
		if sub, ok := asMap(v); ok {
			out = append(out, line{text: titleize(key) + ":", bold: true})
			for _, sk := range sortedKeys(sub) {
				out = append(out, line{text: fmt.Sprintf("• %s: %s", titleize(sk), formatScalar(sub[sk])), level: 1})
			}
			continue
		}
		out = append(out, line{text: fmt.Sprintf("%s: %s", titleize(key), formatScalar(v)), bold: true})
	}
	return out
}

// formatItem renders one list entry. Structured factors keep their
// impact, confidence and evidence annotations.
func formatItem(item any) string {
	m, ok := asMap(item)
	if !ok {
		return "• " + formatScalar(item)
	}

	factor, _ := m["factor"].(string)
	if factor == "" {
		factor = formatScalar(item)
	}
	text := "• " + factor
	if impact, _ := m["impact"].(string); impact != "" {
		text += fmt.Sprintf(" (Impact: %s)", impact)
	}
	if confidence, ok := asFloat(m["confidence"]); ok {
		text += fmt.Sprintf(" (Confidence: %.0f%%)", confidence*100)
	}
	if evidence, _ := m["evidence"].(string); evidence != "" {
		text += " - " + evidence
	}
	return text
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case nil:
		return ""
	default:
		if items, ok := asSlice(v); ok {
			parts := make([]string, len(items))
			for i, it := range items {
				parts[i] = formatScalar(it)
			}
			return strings.Join(parts, ", ")
		}
		return fmt.Sprint(v)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case primitive.M:
		return t, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case primitive.A:
		return t, true
	}
	return nil, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
