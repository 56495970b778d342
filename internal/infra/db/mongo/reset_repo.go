package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
)

// ResetRepository persists password reset tokens.
type ResetRepository struct {
	coll *mongo.Collection
}

func NewResetRepository(db *mongo.Database) *ResetRepository {
	return &ResetRepository{coll: db.Collection("password_resets")}
}

func (r *ResetRepository) Insert(ctx context.Context, reset *users.PasswordReset) error {
	_, err := r.coll.InsertOne(ctx, reset)
	return err
}

// FindValid only matches tokens that are unused and not yet expired.
func (r *ResetRepository) FindValid(ctx context.Context, token string, now time.Time) (*users.PasswordReset, error) {
	var reset users.PasswordReset
	err := r.coll.FindOne(ctx, bson.M{
		"token":      token,
		"used":       false,
		"expires_at": bson.M{"$gt": now},
	}).Decode(&reset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, users.ErrNotFound
		}
		return nil, err
	}
	return &reset, nil
}

func (r *ResetRepository) MarkUsed(ctx context.Context, token string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"used": true}},
	)
	return err
}
