package analysis

import (
	"context"
	"time"
)

// Repository port (interface untuk persistence)
type Repository interface {
	Insert(ctx context.Context, a *BusinessAnalysis) error
	Get(ctx context.Context, userID string, id AnalysisID) (*BusinessAnalysis, error)

	// SetStatus flips only status + updated_at (pending -> processing,
	// processing -> cancelled).
	SetStatus(ctx context.Context, id AnalysisID, status Status, at time.Time) error
	// SetFailed records the captured error text on the record.
	SetFailed(ctx context.Context, id AnalysisID, errText string, at time.Time) error
	// Complete writes results, consensus, confidence_score and the
	// completed status in one update.
	Complete(ctx context.Context, id AnalysisID, results map[Framework]FrameworkResults, consensus Consensus, at time.Time) error

	// History returns the user's analyses most-recent-first, with an
	// optional case-insensitive substring match on business_input.
	History(ctx context.Context, userID string, skip, limit int64, search string) ([]*BusinessAnalysis, error)

	Delete(ctx context.Context, userID string, id AnalysisID) (int64, error)
	DeleteMany(ctx context.Context, userID string, ids []AnalysisID) (int64, error)

	// FailStaleProcessing marks records left in processing by a previous
	// process as failed. Called once at startup.
	FailStaleProcessing(ctx context.Context, errText string, at time.Time) (int64, error)
}
