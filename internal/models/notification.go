package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification type constants.
const (
	NotificationTaskAssigned = "task_assigned"
	NotificationTaskUpdated  = "task_updated"
	NotificationTeamInvite   = "team_invite"
	NotificationRoleChange   = "role_change"
)

// Notification represents a message delivered to a single user. The read
// flag only ever moves from false to true.
type Notification struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	Type      string              `json:"type" bson:"type" example:"task_assigned"`
	Title     string              `json:"title" bson:"title" example:"New Task Assigned"`
	Message   string              `json:"message" bson:"message"`
	TaskID    *primitive.ObjectID `json:"taskId,omitempty" bson:"taskId,omitempty"`
	TeamID    *primitive.ObjectID `json:"teamId,omitempty" bson:"teamId,omitempty"`
	Read      bool                `json:"read" bson:"read"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	ReadAt    *time.Time          `json:"readAt,omitempty" bson:"readAt,omitempty"`
}

// NotificationListResponse is the response for listing notifications.
type NotificationListResponse struct {
	Items       []Notification `json:"items"`
	UnreadCount int            `json:"unreadCount"`
}
