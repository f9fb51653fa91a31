// Package validator registers custom request validators.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskflow/internal/models"
)

// taskStatuses is the set of workflow states accepted on the wire.
var taskStatuses = map[string]bool{
	string(models.StatusTodo):       true,
	string(models.StatusInProgress): true,
	string(models.StatusDone):       true,
}

// validateTaskStatus validates that a string is a known task status
func validateTaskStatus(fl validator.FieldLevel) bool {
	return taskStatuses[fl.Field().String()]
}

// RegisterCustomValidators registers all custom validators with gin's validator
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("taskstatus", validateTaskStatus)
	}
}
