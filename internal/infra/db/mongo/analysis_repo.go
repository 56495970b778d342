package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/Najnomics/business-analysis-ai-V2/internal/domain/analysis"
)

// AnalysisRepository persists BusinessAnalysis records in the
// business_analyses collection. All reads and deletes are owner-scoped;
// status writes are id-scoped point updates (one writer per id).
type AnalysisRepository struct {
	coll *mongo.Collection
}

func NewAnalysisRepository(db *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{coll: db.Collection("business_analyses")}
}

func (r *AnalysisRepository) Insert(ctx context.Context, a *domain.BusinessAnalysis) error {
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *AnalysisRepository) Get(ctx context.Context, userID string, id domain.AnalysisID) (*domain.BusinessAnalysis, error) {
	var a domain.BusinessAnalysis
	err := r.coll.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnalysisRepository) SetStatus(ctx context.Context, id domain.AnalysisID, status domain.Status, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": at}},
	)
	return err
}

func (r *AnalysisRepository) SetFailed(ctx context.Context, id domain.AnalysisID, errText string, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": domain.StatusFailed, "error": errText, "updated_at": at}},
	)
	return err
}

// Complete writes results, consensus and the terminal status in a single
// update, so readers never observe a partially populated record.
func (r *AnalysisRepository) Complete(ctx context.Context, id domain.AnalysisID, results map[domain.Framework]domain.FrameworkResults, consensus domain.Consensus, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"comprehensive_results": results,
			"ai_consensus":          consensus,
			"confidence_score":      consensus.ConsensusScore,
			"status":                domain.StatusCompleted,
			"updated_at":            at,
		}},
	)
	return err
}

func (r *AnalysisRepository) History(ctx context.Context, userID string, skip, limit int64, search string) ([]*domain.BusinessAnalysis, error) {
	filter := bson.M{"user_id": userID}
	if search != "" {
		filter["business_input"] = primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.BusinessAnalysis
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalysisRepository) Delete(ctx context.Context, userID string, id domain.AnalysisID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *AnalysisRepository) DeleteMany(ctx context.Context, userID string, ids []domain.AnalysisID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FailStaleProcessing sweeps records orphaned by a restart. The registry
// holding their cancel handles died with the old process.
func (r *AnalysisRepository) FailStaleProcessing(ctx context.Context, errText string, at time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": domain.StatusProcessing},
		bson.M{"$set": bson.M{"status": domain.StatusFailed, "error": errText, "updated_at": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
