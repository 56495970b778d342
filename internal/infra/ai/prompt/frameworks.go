package prompt

import (
	"fmt"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// Builder maps (framework, business input) -> instruction prompt using the
// static template table below. Pure; safe for concurrent use.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// Build returns the full prompt for one framework. Unknown frameworks fail
// with ErrUnknownFramework; with the closed enumeration this is defensive only.
func (Builder) Build(framework analysis.Framework, businessInput string) (string, error) {
	tmpl, ok := templates[framework]
	if !ok {
		return "", fmt.Errorf("%w: %s", analysis.ErrUnknownFramework, framework)
	}
	return baseContext(businessInput) + tmpl, nil
}

func baseContext(businessInput string) string {
	return fmt.Sprintf(`Business Input: %s

IMPORTANT: Please provide extremely detailed, comprehensive analysis with specific insights,
quantitative assessments, actionable recommendations, and evidence-based conclusions.
Include specific examples, metrics, benchmarks, and implementation guidance.
`, businessInput)
}

var templates = map[analysis.Framework]string{
	analysis.FrameworkSWOT: `
Perform an exhaustive SWOT analysis with:
1. STRENGTHS: Identify 5-7 key strengths with impact assessment (high/medium/low), confidence scores (0-1), and specific evidence
2. WEAKNESSES: Identify 4-6 key weaknesses with impact assessment, confidence scores, and mitigation strategies
3. OPPORTUNITIES: Identify 5-8 opportunities with market sizing, timeline, and implementation difficulty
4. THREATS: Identify 4-6 threats with probability assessment, impact severity, and contingency plans

For each item, provide:
- Detailed description and evidence
- Quantitative impact assessment where possible
- Confidence score based on data quality
- Actionable recommendations
- Industry benchmarks and comparisons

Format as structured JSON with all details included.`,

	analysis.FrameworkPESTEL: `
Conduct comprehensive PESTEL analysis covering:

POLITICAL: Government policies, regulations, political stability, tax policies
ECONOMIC: Economic growth, interest rates, inflation, market dynamics
SOCIAL: Demographics, cultural attitudes, education, consumer behavior
TECHNOLOGICAL: Innovation, R&D, automation, digitalization
ENVIRONMENTAL: Climate change, sustainability, resource scarcity, ESG
LEGAL: Legal framework, compliance, IP rights, employment law

For each factor, provide impact score (1-10), trend direction, and detailed analysis.`,

	analysis.FrameworkPorterFiveForces: `
Analyze competitive dynamics using Porter's Five Forces with detailed assessment of:
1. Competitive Rivalry (intensity 1-10)
2. Threat of New Entrants (threat level 1-10)
3. Bargaining Power of Suppliers (power 1-10)
4. Bargaining Power of Buyers (power 1-10)
5. Threat of Substitutes (threat level 1-10)

Provide specific examples and strategic implications for each force.`,

	analysis.FrameworkBusinessModelCanvas: `
Generate comprehensive Business Model Canvas with detailed descriptions for:
1. Customer Segments - demographics, needs, behaviors
2. Value Propositions - unique differentiators
3. Channels - distribution and sales
4. Customer Relationships - acquisition and retention
5. Revenue Streams - models and pricing
6. Key Resources - assets and capabilities
7. Key Activities - core processes
8. Key Partnerships - strategic alliances
9. Cost Structure - major cost categories

Provide specific examples and metrics for each component.`,

	analysis.FrameworkVRIO: `
Analyze resources using VRIO framework evaluating:
VALUABLE: Revenue generation or cost reduction potential
RARE: Scarcity in market and competitive landscape
INIMITABLE: Barriers to replication and complexity
ORGANIZED: Organizational capability to exploit

Provide competitive implications and strategic recommendations.`,

	analysis.FrameworkBCGMatrix: `
Analyze business portfolio using BCG Matrix:
STARS: High growth, high market share opportunities
CASH COWS: Low growth, high market share profit generators
QUESTION MARKS: High growth, low market share investments
DOGS: Low growth, low market share challenges

Provide strategic recommendations for each category.`,

	analysis.FrameworkCompetitiveLandscape: `
Comprehensive competitive analysis including:
1. Direct and indirect competitors
2. Market share and positioning
3. Competitive advantages and weaknesses
4. Pricing and value propositions
5. Strategic threats and opportunities

Provide detailed competitor profiles and strategic implications.`,

	analysis.FrameworkCustomerSegmentation: `
Detailed customer segmentation with:
1. Demographic segmentation
2. Psychographic profiling
3. Behavioral patterns
4. Needs-based segmentation
5. Customer personas and journey mapping
6. Targeting and positioning strategies

Include actionable insights and recommendations.`,

	analysis.FrameworkFinancialAnalysis: `
Comprehensive financial analysis including:
1. Profitability ratios and trends
2. Liquidity and cash flow analysis
3. Leverage and capital structure
4. Efficiency and asset utilization
5. Growth analysis and projections
6. Valuation and investment returns

Provide specific metrics and strategic recommendations.`,

	analysis.FrameworkBreakEvenAnalysis: `
Detailed break-even analysis with:
1. Cost structure analysis (fixed/variable)
2. Break-even calculations and scenarios
3. Sensitivity analysis
4. Pricing strategy implications
5. Capacity planning requirements
6. Profitability improvement opportunities

Include actionable insights and recommendations.`,

	analysis.FrameworkUnitEconomics: `
Comprehensive unit economics analysis:
1. Customer Acquisition Cost (CAC)
2. Customer Lifetime Value (CLTV)
3. CLTV/CAC ratio and sustainability
4. Contribution margins by product/service
5. Cohort analysis and retention
6. Scalability assessment

Provide optimization strategies and recommendations.`,

	analysis.FrameworkRevenueModel: `
Revenue model analysis including:
1. Revenue stream diversification
2. Pricing strategy optimization
3. Business model alternatives
4. Scalability and growth potential
5. Risk assessment and mitigation
6. Implementation roadmap

Provide detailed recommendations and strategic guidance.`,

	analysis.FrameworkRiskAssessment: `
Comprehensive risk assessment covering:
1. Strategic, operational, and financial risks
2. Cybersecurity and compliance risks
3. Risk probability and impact matrix
4. Mitigation strategies and controls
5. Business continuity planning
6. Risk monitoring and governance

Provide actionable risk management recommendations.`,

	analysis.FrameworkScenarioAnalysis: `
Detailed scenario analysis including:
1. Best case, worst case, most likely scenarios
2. Key variables and sensitivity analysis
3. Strategic implications and options
4. Risk and opportunity assessment
5. Decision support framework
6. Monitoring and adaptation strategies

Provide comprehensive scenario planning guidance.`,

	analysis.FrameworkMarketIntelligence: `
Comprehensive market intelligence covering:
1. Market size (TAM/SAM/SOM) and growth
2. Market segmentation and trends
3. Competitive intelligence and positioning
4. Customer insights and behavior
5. Industry trends and forecasting
6. Market entry strategies

Provide detailed market insights and strategic recommendations.`,

	analysis.FrameworkGoToMarketStrategy: `
Comprehensive go-to-market strategy including:
1. Market positioning and messaging
2. Product and pricing strategy
3. Sales and marketing approach
4. Distribution and channel strategy
5. Customer success framework
6. Launch planning and execution

Provide detailed implementation roadmap and success metrics.`,

	analysis.FrameworkTrendAnalysis: `
Comprehensive trend analysis covering:
1. Industry and technology trends
2. Consumer and social trends
3. Economic and regulatory trends
4. Environmental and sustainability trends
5. Trend implications and opportunities
6. Strategic response recommendations

Provide actionable trend insights and strategic guidance.`,

	analysis.FrameworkBenchmarking: `
Comprehensive benchmarking analysis including:
1. Performance and competitive benchmarking
2. Functional and industry best practices
3. Gap analysis and improvement opportunities
4. Implementation roadmap and metrics
5. Continuous benchmarking framework

Provide detailed benchmarking insights and recommendations.`,

	analysis.FrameworkKPIDashboard: `
KPI dashboard design covering:
1. Strategic and financial KPIs
2. Customer and operational metrics
3. Innovation and employee KPIs
4. Market and competitive indicators
5. Dashboard design and governance

Provide comprehensive KPI framework and implementation guidance.`,

	analysis.FrameworkProcessMapping: `
Process mapping analysis including:
1. Core process identification and documentation
2. Bottleneck and efficiency analysis
3. Improvement opportunities and automation
4. Technology integration requirements
5. Performance measurement and governance

Provide detailed process optimization recommendations.`,

	analysis.FrameworkValueStreamMapping: `
Value stream mapping analysis covering:
1. Current state analysis and waste identification
2. Value-added vs non-value-added activities
3. Future state design and optimization
4. Implementation roadmap and improvements
5. Continuous improvement framework

Provide comprehensive value stream optimization guidance.`,

	analysis.FrameworkLeanSixSigma: `
Lean Six Sigma analysis including:
1. DMAIC methodology application
2. Quality management and waste elimination
3. Statistical analysis and process control
4. Standardization and continuous improvement
5. Change management and sustainability

Provide detailed Lean Six Sigma implementation guidance.`,

	analysis.FrameworkCapacityPlanning: `
Capacity planning analysis covering:
1. Current capacity assessment and constraints
2. Demand forecasting and requirements
3. Resource planning and optimization
4. Scalability strategies and investment
5. Performance monitoring and contingency planning

Provide comprehensive capacity planning recommendations.`,

	analysis.FrameworkCostBenefitAnalysis: `
Cost-benefit analysis including:
1. Cost identification and quantification
2. Benefit assessment and valuation
3. Financial analysis (NPV, IRR, payback)
4. Risk assessment and sensitivity analysis
5. Alternative evaluation and recommendations

Provide detailed investment decision framework.`,

	analysis.FrameworkWorkingCapitalAnalysis: `
Working capital analysis covering:
1. Working capital components and cash cycle
2. Liquidity and efficiency analysis
3. Optimization strategies and policies
4. Risk management and technology solutions
5. Performance monitoring and improvement

Provide comprehensive working capital optimization recommendations.`,
}
