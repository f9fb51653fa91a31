package repository

import (
	"context"
	"time"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int, error)
	// MarkRead flips the read flag to true. The flag is monotonic: a
	// notification already read stays read.
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
}

// notificationRepository implements NotificationRepository using MongoDB.
type notificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{
		collection: db.Collection("notifications"),
	}
}

// Create inserts a new notification.
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.CreatedAt = time.Now()
	notification.Read = false

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return err
	}

	notification.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByUserID returns the user's notifications, newest first.
func (r *notificationRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *notificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// MarkRead marks a single notification as read.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"read":   true,
		"readAt": time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "userId": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"read":   true,
		"readAt": time.Now(),
	}}

	_, err := r.collection.UpdateMany(ctx, bson.M{"userId": userID, "read": false}, update)
	return err
}
