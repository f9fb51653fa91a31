// Package authz decides what a user may do to a task or team. The core
// checks are pure functions over the actor's role, the resource and the
// actor's cached team memberships; the Authorizer wraps them with the
// repository lookup the lead check needs.
package authz

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskflow/internal/models"
)

// Action constants define the authorization actions.
const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionInvite = "invite"
)

// CanPerformTask reports whether the actor may perform the action on the
// task. teams is the actor's cached team list, needed for the lead check.
// A zero actor ID fails closed.
func CanPerformTask(role string, actorID primitive.ObjectID, task *models.Task, action string, teams []models.Team) bool {
	if actorID.IsZero() || task == nil {
		return false
	}

	// Admins can do everything.
	if role == models.RoleAdmin {
		return true
	}

	// Owners can do everything with their own tasks.
	if task.OwnerID == actorID {
		return true
	}

	// Team leads can edit and delete tasks of teams they lead.
	if role == models.RoleLead && task.TeamID != nil {
		if isLeadOf(actorID, *task.TeamID, teams) && (action == ActionEdit || action == ActionDelete) {
			return true
		}
	}

	// Assignees can view and edit, never delete.
	if (action == ActionView || action == ActionEdit) && task.IsAssignee(actorID) {
		return true
	}

	return false
}

// CanPerformTeam reports whether the actor may perform the action on the
// team. A zero actor ID fails closed.
func CanPerformTeam(role string, actorID primitive.ObjectID, team *models.Team, action string) bool {
	if actorID.IsZero() || team == nil {
		return false
	}

	if role == models.RoleAdmin {
		return true
	}

	if team.OwnerID == actorID || team.LeadID == actorID {
		return true
	}

	if action == ActionView && team.HasMember(actorID) {
		return true
	}

	return false
}

func isLeadOf(actorID, teamID primitive.ObjectID, teams []models.Team) bool {
	for i := range teams {
		if teams[i].ID == teamID && teams[i].LeadID == actorID {
			return true
		}
	}
	return false
}
