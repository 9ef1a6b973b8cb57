// internal/interface/repository/activity_repo.go
package repository

import (
	"context"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityRepository implements the ActivityRepository interface
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoDB activity repository
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	collection := db.Collection("activityLog")

	ctx := context.Background()
	atIndex := mongo.IndexModel{
		Keys: bson.M{"at": -1},
	}
	collection.Indexes().CreateOne(ctx, atIndex)

	return &MongoActivityRepository{
		collection: collection,
	}
}

// Append stores one activity entry
func (r *MongoActivityRepository) Append(ctx context.Context, entry *entity.ActivityEntry) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// Recent returns the latest entries, newest first
func (r *MongoActivityRepository) Recent(ctx context.Context, limit int) ([]*entity.ActivityEntry, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "at", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*entity.ActivityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
