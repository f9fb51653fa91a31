package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Global activity action constants.
const (
	ActivityTaskDeleted     = "task_deleted"
	ActivityTeamCreated     = "team_created"
	ActivityTeamInvite      = "team_invite"
	ActivityRoleUpgrade     = "role_upgrade"
	ActivityAdminRoleUpdate = "admin_role_update"
)

// ActivityEntry is a record in the global append-only activity log.
// Entries are write-only from the application's perspective beyond listing.
type ActivityEntry struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID  `json:"userId" bson:"userId"`
	Action       string              `json:"action" bson:"action" example:"task_deleted"`
	Details      string              `json:"details" bson:"details"`
	TaskID       *primitive.ObjectID `json:"taskId,omitempty" bson:"taskId,omitempty"`
	TeamID       *primitive.ObjectID `json:"teamId,omitempty" bson:"teamId,omitempty"`
	TargetUserID *primitive.ObjectID `json:"targetUserId,omitempty" bson:"targetUserId,omitempty"`
	Timestamp    time.Time           `json:"timestamp" bson:"timestamp"`
}

// ActivityListResponse is the response for listing activity entries.
type ActivityListResponse struct {
	Items []ActivityEntry `json:"items"`
}
