package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team represents a team in the system. The owner is always present in
// MemberIDs, so the member set is never empty while the team exists.
type Team struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Name        string               `json:"name" bson:"name" example:"Engineering"`
	Description string               `json:"description" bson:"description"`
	OwnerID     primitive.ObjectID   `json:"ownerId" bson:"ownerId"`
	LeadID      primitive.ObjectID   `json:"leadId" bson:"leadId"` // may differ from owner after reassignment
	MemberIDs   []primitive.ObjectID `json:"memberIds" bson:"memberIds"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasMember reports whether the given user belongs to the team.
func (t *Team) HasMember(userID primitive.ObjectID) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateTeamRequest is the payload for creating a team.
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100" example:"Engineering"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// InviteMemberRequest is the payload for inviting a user to a team by email.
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
}

// TeamListResponse is the response for listing teams.
type TeamListResponse struct {
	Items []Team `json:"items"`
}
