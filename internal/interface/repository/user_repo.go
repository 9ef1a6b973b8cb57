// internal/interface/repository/user_repo.go
package repository

import (
	"context"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements the UserRepository interface
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	collection := db.Collection("users")

	ctx := context.Background()
	usernameIndex := mongo.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, usernameIndex)

	return &MongoUserRepository{
		collection: collection,
	}
}

// FindByUsername finds a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Save creates or updates a user
func (r *MongoUserRepository) Save(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
		user.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"username": user.Username},
		bson.M{"$set": user},
		opts,
	)
	return err
}

// MongoSessionRepository implements the SessionRepository interface
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	collection := db.Collection("sessions")

	ctx := context.Background()
	tokenIndex := mongo.IndexModel{
		Keys:    bson.M{"token": 1},
		Options: options.Index().SetUnique(true),
	}
	expiryIndex := mongo.IndexModel{
		Keys: bson.M{"expiresAt": 1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{tokenIndex, expiryIndex})

	return &MongoSessionRepository{
		collection: collection,
	}
}

// Create stores a new session
func (r *MongoSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if session.ID == "" {
		session.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

// FindByToken finds a session by its bearer token
func (r *MongoSessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var session entity.Session
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes a session
func (r *MongoSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"token": token})
	return err
}

// DeleteExpired removes sessions that expired before the given time
func (r *MongoSessionRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": before}})
	return err
}
