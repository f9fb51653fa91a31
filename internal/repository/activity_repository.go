package repository

import (
	"context"
	"time"

	"taskflow/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines the interface for the global activity log.
// The log is append-only; there is no update or delete.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityEntry) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.ActivityEntry, error)
}

// activityRepository implements ActivityRepository using MongoDB.
type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{
		collection: db.Collection("activity_logs"),
	}
}

// Create appends an entry to the global activity log.
func (r *activityRepository) Create(ctx context.Context, entry *models.ActivityEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}

	entry.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByUserID returns the user's activity entries, newest first.
func (r *activityRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.ActivityEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.ActivityEntry{}
	}

	return entries, nil
}
