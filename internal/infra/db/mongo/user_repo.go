package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Najnomics/business-analysis-ai-V2/internal/domain/users"
)

// UserRepository persists accounts in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, u *users.User) error {
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id users.UserID) (*users.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id users.UserID, passwordHash string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*users.User, error) {
	var u users.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, users.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
