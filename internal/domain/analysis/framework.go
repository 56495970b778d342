package analysis

import "strings"

// Framework enum: one of the 25 fixed analytical frameworks
type Framework string

const (
	FrameworkSWOT                   Framework = "swot_analysis"
	FrameworkPESTEL                 Framework = "pestel_analysis"
	FrameworkPorterFiveForces       Framework = "porter_five_forces"
	FrameworkBusinessModelCanvas    Framework = "business_model_canvas"
	FrameworkVRIO                   Framework = "vrio_framework"
	FrameworkBCGMatrix              Framework = "bcg_matrix"
	FrameworkCompetitiveLandscape   Framework = "competitive_landscape"
	FrameworkCustomerSegmentation   Framework = "customer_segmentation"
	FrameworkFinancialAnalysis      Framework = "financial_analysis"
	FrameworkBreakEvenAnalysis      Framework = "break_even_analysis"
	FrameworkUnitEconomics          Framework = "unit_economics"
	FrameworkRevenueModel           Framework = "revenue_model"
	FrameworkRiskAssessment         Framework = "risk_assessment"
	FrameworkScenarioAnalysis       Framework = "scenario_analysis"
	FrameworkMarketIntelligence     Framework = "market_intelligence"
	FrameworkGoToMarketStrategy     Framework = "go_to_market_strategy"
	FrameworkTrendAnalysis          Framework = "trend_analysis"
	FrameworkBenchmarking           Framework = "benchmarking"
	FrameworkKPIDashboard           Framework = "kpi_dashboard"
	FrameworkProcessMapping         Framework = "process_mapping"
	FrameworkValueStreamMapping     Framework = "value_stream_mapping"
	FrameworkLeanSixSigma           Framework = "lean_six_sigma"
	FrameworkCapacityPlanning       Framework = "capacity_planning"
	FrameworkCostBenefitAnalysis    Framework = "cost_benefit_analysis"
	FrameworkWorkingCapitalAnalysis Framework = "working_capital_analysis"
)

// frameworks is the fixed processing order of the orchestrator loop.
var frameworks = []Framework{
	FrameworkSWOT,
	FrameworkPESTEL,
	FrameworkPorterFiveForces,
	FrameworkBusinessModelCanvas,
	FrameworkVRIO,
	FrameworkBCGMatrix,
	FrameworkCompetitiveLandscape,
	FrameworkCustomerSegmentation,
	FrameworkFinancialAnalysis,
	FrameworkBreakEvenAnalysis,
	FrameworkUnitEconomics,
	FrameworkRevenueModel,
	FrameworkRiskAssessment,
	FrameworkScenarioAnalysis,
	FrameworkMarketIntelligence,
	FrameworkGoToMarketStrategy,
	FrameworkTrendAnalysis,
	FrameworkBenchmarking,
	FrameworkKPIDashboard,
	FrameworkProcessMapping,
	FrameworkValueStreamMapping,
	FrameworkLeanSixSigma,
	FrameworkCapacityPlanning,
	FrameworkCostBenefitAnalysis,
	FrameworkWorkingCapitalAnalysis,
}

// Frameworks returns the ordered framework list. Callers get a copy so the
// declared order cannot be mutated.
func Frameworks() []Framework {
	out := make([]Framework, len(frameworks))
	copy(out, frameworks)
	return out
}

// Valid reports whether f is one of the declared frameworks.
func (f Framework) Valid() bool {
	for _, known := range frameworks {
		if f == known {
			return true
		}
	}
	return false
}

// DisplayName turns "porter_five_forces" into "Porter Five Forces" for
// report headings.
func (f Framework) DisplayName() string {
	parts := strings.Split(string(f), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
