package repository

import (
	"context"
	"errors"
	"log"
	"time"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Task list filter values.
const (
	TaskFilterAll      = "all"
	TaskFilterPersonal = "personal"
	TaskFilterAssigned = "assigned"
	TaskFilterTeam     = "team"
)

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindForUser(ctx context.Context, userID primitive.ObjectID, filter string) ([]models.Task, error)
	// ApplyUpdate performs the task update as a single atomic write:
	// field changes, a version bump of exactly 1 and an additive push of
	// the activity entry. Concurrent updates cannot lose each other's
	// log entries.
	ApplyUpdate(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TaskActivity) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Watch streams change events for tasks owned by the given user until
	// the context is cancelled.
	Watch(ctx context.Context, ownerID primitive.ObjectID) (<-chan models.TaskChange, error)
}

// taskRepository implements TaskRepository using MongoDB.
type taskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *mongo.Database) TaskRepository {
	return &taskRepository{
		collection: db.Collection("tasks"),
	}
}

// Create inserts a new task into the database.
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return err
	}

	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a task by its ID.
func (r *taskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}

// FindForUser returns the user's tasks, newest first. The filter narrows to
// owned, assigned or team tasks; anything else returns the union of owned
// and assigned.
func (r *taskRepository) FindForUser(ctx context.Context, userID primitive.ObjectID, filter string) ([]models.Task, error) {
	var query bson.M

	switch filter {
	case TaskFilterPersonal:
		query = bson.M{"ownerId": userID}
	case TaskFilterAssigned:
		query = bson.M{"assigneeIds": userID}
	case TaskFilterTeam:
		query = bson.M{"teamId": bson.M{"$ne": nil}, "$or": []bson.M{
			{"ownerId": userID},
			{"assigneeIds": userID},
		}}
	default:
		query = bson.M{"$or": []bson.M{
			{"ownerId": userID},
			{"assigneeIds": userID},
		}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	return tasks, nil
}

// ApplyUpdate applies field changes, increments the version by exactly 1 and
// appends the activity entry, all in one write.
func (r *taskRepository) ApplyUpdate(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TaskActivity) (*models.Task, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	update := bson.M{
		"$set":  set,
		"$inc":  bson.M{"version": 1},
		"$push": bson.M{"activityLog": entry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}

// Delete removes a task from the database.
func (r *taskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// Watch opens a change stream over the user's owned tasks and converts the
// raw events into TaskChange values. The goroutine exits when the context
// is cancelled or the stream breaks.
func (r *taskRepository) Watch(ctx context.Context, ownerID primitive.ObjectID) (<-chan models.TaskChange, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"$or": []bson.M{
				{"fullDocument.ownerId": ownerID},
				{"operationType": "delete"},
			},
		}}},
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.collection.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, err
	}

	changes := make(chan models.TaskChange)

	go func() {
		defer close(changes)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				OperationType string      `bson:"operationType"`
				FullDocument  models.Task `bson:"fullDocument"`
				DocumentKey   struct {
					ID primitive.ObjectID `bson:"_id"`
				} `bson:"documentKey"`
			}
			if err := stream.Decode(&event); err != nil {
				log.Printf("Task change stream decode error: %v", err)
				continue
			}

			change := models.TaskChange{ID: event.DocumentKey.ID.Hex()}
			switch event.OperationType {
			case "insert":
				change.Type = "added"
				task := event.FullDocument
				change.Task = &task
			case "update", "replace":
				change.Type = "modified"
				task := event.FullDocument
				change.Task = &task
			case "delete":
				change.Type = "removed"
			default:
				continue
			}

			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return changes, nil
}
