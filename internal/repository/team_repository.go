package repository

import (
	"context"
	"errors"
	"time"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error)
	// AddMember adds a user to the member set. The write is additive
	// ($addToSet), so adding an existing member is a no-op.
	AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error
}

// teamRepository implements TeamRepository using MongoDB.
type teamRepository struct {
	collection *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *mongo.Database) TeamRepository {
	return &teamRepository{
		collection: db.Collection("teams"),
	}
}

// Create inserts a new team into the database.
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		return err
	}

	team.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a team by its ID.
func (r *teamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// FindByMember returns all teams the user belongs to.
func (r *teamRepository) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"memberIds": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}

	if teams == nil {
		teams = []models.Team{}
	}

	return teams, nil
}

// AddMember adds a user to the team's member set.
func (r *teamRepository) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"memberIds": userID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": teamID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrTeamNotFound
	}
	return nil
}
