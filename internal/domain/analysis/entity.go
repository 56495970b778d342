package analysis

import (
	"time"
)

// ID tipe untuk BusinessAnalysis
type AnalysisID string

// Status enum
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// ProviderResult is one AI model's answer for a single framework,
// together with the synthetic confidence/time attached by the orchestrator.
type ProviderResult struct {
	Analysis        map[string]any `json:"analysis" bson:"analysis"`
	ConfidenceScore float64        `json:"confidence_score" bson:"confidence_score"`
	ProcessingTime  float64        `json:"processing_time" bson:"processing_time"`
}

// FrameworkResults maps provider name -> that provider's result.
type FrameworkResults map[string]ProviderResult

// Consensus is the aggregate summary written once, at completion.
type Consensus struct {
	ConsensusScore      float64  `json:"consensus_score" bson:"consensus_score"`
	ModelsUsed          []string `json:"models_used" bson:"models_used"`
	FrameworksAnalyzed  int      `json:"frameworks_analyzed" bson:"frameworks_analyzed"`
	ConflictingInsights []string `json:"conflicting_insights" bson:"conflicting_insights"`
	KeyRecommendations  []string `json:"key_recommendations" bson:"key_recommendations"`
}

// Aggregate Root: BusinessAnalysis
type BusinessAnalysis struct {
	ID              AnalysisID                     `json:"id" bson:"id"`
	UserID          string                         `json:"user_id" bson:"user_id"`
	BusinessInput   string                         `json:"business_input" bson:"business_input"`
	Results         map[Framework]FrameworkResults `json:"comprehensive_results" bson:"comprehensive_results"`
	Consensus       Consensus                      `json:"ai_consensus" bson:"ai_consensus"`
	ConfidenceScore float64                        `json:"confidence_score" bson:"confidence_score"`
	Status          Status                         `json:"status" bson:"status"`
	Error           string                         `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt       time.Time                      `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at" bson:"updated_at"`
}
