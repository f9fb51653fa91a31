package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus represents the workflow state of a task. The set is open to
// extension; only the transition into StatusDone carries side effects.
type TaskStatus string

const (
	// StatusTodo is the default state of a new task.
	StatusTodo TaskStatus = "todo"
	// StatusInProgress indicates work has started.
	StatusInProgress TaskStatus = "in_progress"
	// StatusDone indicates the task is complete.
	StatusDone TaskStatus = "done"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TaskActivity is a single entry in a task's append-only activity log.
type TaskActivity struct {
	Action    string             `json:"action" bson:"action" example:"updated"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Details   string             `json:"details" bson:"details" example:"Status changed from todo to done"`
}

// Attachment describes a file stored with an external media host.
type Attachment struct {
	URL         string    `json:"url" bson:"url"`
	Key         string    `json:"key" bson:"key"`
	Name        string    `json:"name" bson:"name" example:"design.pdf"`
	Size        int64     `json:"size" bson:"size" example:"482113"`
	ContentType string    `json:"contentType" bson:"contentType" example:"application/pdf"`
	UploadedAt  time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

// Task represents a task in the system.
type Task struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Title       string               `json:"title" bson:"title" example:"Ship the Q4 report"`
	Description string               `json:"description" bson:"description"`
	Status      TaskStatus           `json:"status" bson:"status" example:"todo"`
	Priority    string               `json:"priority" bson:"priority" example:"medium"`
	OwnerID     primitive.ObjectID   `json:"ownerId" bson:"ownerId"`
	AssigneeIDs []primitive.ObjectID `json:"assigneeIds" bson:"assigneeIds"`
	TeamID      *primitive.ObjectID  `json:"teamId,omitempty" bson:"teamId,omitempty"` // nil = personal task
	DueDate     *time.Time           `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Version     int                  `json:"version" bson:"version" example:"1"` // increments by exactly 1 per update
	ActivityLog []TaskActivity       `json:"activityLog" bson:"activityLog"`
	Attachments []Attachment         `json:"attachments" bson:"attachments"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// IsAssignee reports whether the given user is in the task's assignee set.
func (t *Task) IsAssignee(userID primitive.ObjectID) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateTaskRequest is the payload for creating a task. Attachments travel
// as multipart file parts alongside this JSON body.
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200" example:"Ship the Q4 report"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Status      string   `json:"status" binding:"omitempty,taskstatus"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeIDs []string `json:"assigneeIds" binding:"omitempty,max=20,dive,len=24"`
	TeamID      string   `json:"teamId" binding:"omitempty,len=24"`
	DueDate     *string  `json:"dueDate" binding:"omitempty"`
}

// UpdateTaskRequest is the payload for partially updating a task.
type UpdateTaskRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Status      *string  `json:"status" binding:"omitempty,taskstatus"`
	Priority    *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	AssigneeIDs []string `json:"assigneeIds" binding:"omitempty,max=20,dive,len=24"`
}

// CreateTaskResponse is the response for creating a task. Warnings carry
// soft failures (a skipped attachment) that did not abort the creation.
type CreateTaskResponse struct {
	Task     Task     `json:"task"`
	Warnings []string `json:"warnings,omitempty"`
}

// TaskListResponse is the response for listing tasks.
type TaskListResponse struct {
	Items []Task `json:"items"`
}

// TaskChange is a single change-stream event for a watched task set.
type TaskChange struct {
	Type string `json:"type" example:"modified"` // added, modified or removed
	Task *Task  `json:"task,omitempty"`
	ID   string `json:"id" example:"507f1f77bcf86cd799439011"`
}
