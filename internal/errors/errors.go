// Package errors provides custom error types for the application.
package errors

import "errors"

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Auth errors
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrInvalidSecretKey    = errors.New("invalid admin secret key")
)

// Permission errors
var (
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
	ErrAdminOnly        = errors.New("only admins can perform this action")
)

// Task errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidTaskData   = errors.New("invalid task data")
)

// Team errors
var (
	ErrTeamNotFound      = errors.New("team not found")
	ErrNotTeamMember     = errors.New("you are not a member of this team")
	ErrAlreadyMember     = errors.New("user is already a member of this team")
	ErrMemberCannotOwn   = errors.New("only team leads and admins can create teams")
	ErrCannotRemoveOwner = errors.New("cannot remove team owner")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Upload errors
var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed = errors.New("file type is not supported")
	ErrUploadFailed       = errors.New("all upload destinations failed")
)
