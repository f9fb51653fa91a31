package authz

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskflow/internal/models"
)

// TeamFinder is the interface required by LocalAuthorizer to look up the
// actor's team memberships. This keeps the authorizer decoupled from the
// full repository implementation.
type TeamFinder interface {
	FindByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error)
}

// Authorizer defines the interface for authorization checks against tasks
// and teams.
type Authorizer interface {
	// CanPerformTask checks if the actor can perform an action on a task.
	CanPerformTask(ctx context.Context, actor *models.User, task *models.Task, action string) (bool, error)
	// CanPerformTeam checks if the actor can perform an action on a team.
	CanPerformTeam(ctx context.Context, actor *models.User, team *models.Team, action string) (bool, error)
}

// LocalAuthorizer implements Authorizer by loading the actor's teams and
// delegating to the pure evaluator functions.
type LocalAuthorizer struct {
	teamFinder TeamFinder
}

// NewLocalAuthorizer creates a new LocalAuthorizer.
func NewLocalAuthorizer(teamFinder TeamFinder) *LocalAuthorizer {
	return &LocalAuthorizer{teamFinder: teamFinder}
}

// CanPerformTask checks if the actor can perform an action on a task.
// A nil actor fails closed.
func (a *LocalAuthorizer) CanPerformTask(ctx context.Context, actor *models.User, task *models.Task, action string) (bool, error) {
	if actor == nil {
		return false, nil
	}

	// The lead check needs the actor's team list; skip the lookup when the
	// task has no team.
	var teams []models.Team
	if task != nil && task.TeamID != nil && actor.Role == models.RoleLead {
		var err error
		teams, err = a.teamFinder.FindByMember(ctx, actor.ID)
		if err != nil {
			return false, err
		}
	}

	return CanPerformTask(actor.Role, actor.ID, task, action, teams), nil
}

// CanPerformTeam checks if the actor can perform an action on a team.
// A nil actor fails closed.
func (a *LocalAuthorizer) CanPerformTeam(ctx context.Context, actor *models.User, team *models.Team, action string) (bool, error) {
	if actor == nil {
		return false, nil
	}
	return CanPerformTeam(actor.Role, actor.ID, team, action), nil
}

// Ensure LocalAuthorizer implements Authorizer interface
var _ Authorizer = (*LocalAuthorizer)(nil)
