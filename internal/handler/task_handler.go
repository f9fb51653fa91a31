package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/service"
	"taskflow/internal/storage"
	"taskflow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service service.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service service.TaskServicer) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create godoc
// @Summary      Create a task
// @Description  Create a task. Send JSON directly, or multipart/form-data with the task JSON in the "task" field and files in "attachments". A failed attachment upload becomes a warning, not an error.
// @Tags         tasks
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        request  body      models.CreateTaskRequest  true  "Task details"
// @Success      201      {object}  response.Response{data=models.CreateTaskResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)

	var req models.CreateTaskRequest
	var files []storage.Upload
	var closers []multipart.File

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		form, err := c.MultipartForm()
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		raw := form.Value["task"]
		if len(raw) == 0 {
			response.BadRequest(c, "missing task field")
			return
		}
		if err := json.Unmarshal([]byte(raw[0]), &req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		defer func() {
			for _, f := range closers {
				f.Close()
			}
		}()
		for _, header := range form.File["attachments"] {
			f, err := header.Open()
			if err != nil {
				response.BadRequest(c, err.Error())
				return
			}
			closers = append(closers, f)
			files = append(files, storage.Upload{
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
				Content:     f,
			})
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.service.Create(c.Request.Context(), actor, &req, files)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidTaskData):
			response.BadRequest(c, err.Error())
		case errors.Is(err, apperrors.ErrUnauthorized):
			response.Unauthorized(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.CreatedWithWarnings(c, result, result.Warnings)
}

// List godoc
// @Summary      List tasks
// @Description  List the user's tasks. The filter narrows to personal, assigned or team tasks.
// @Tags         tasks
// @Produce      json
// @Param        filter  query     string  false  "all, personal, assigned or team"
// @Success      200     {object}  response.Response{data=models.TaskListResponse}
// @Failure      401     {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)

	filter := c.DefaultQuery("filter", "all")

	tasks, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, models.TaskListResponse{Items: tasks})
}

// Get godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  response.Response{data=models.Task}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	actor := middleware.GetActor(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id format")
		return
	}

	task, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		taskError(c, err)
		return
	}

	response.Success(c, task)
}

// Update godoc
// @Summary      Update a task
// @Description  Partially update a task. Each update bumps the version by 1 and appends one activity entry.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Task ID"
// @Param        request  body      models.UpdateTaskRequest  true  "Field changes"
// @Success      200      {object}  response.Response{data=models.Task}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id format")
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		taskError(c, err)
		return
	}

	response.Success(c, task)
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id  path  string  true  "Task ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid task id format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		taskError(c, err)
		return
	}

	response.NoContent(c)
}

// Stream godoc
// @Summary      Stream task changes
// @Description  Server-sent events feed of changes to the user's owned tasks. Stays open until the client disconnects.
// @Tags         tasks
// @Produce      text/event-stream
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /tasks/stream [get]
func (h *TaskHandler) Stream(c *gin.Context) {
	actor := middleware.GetActor(c)

	changes, err := h.service.Watch(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case change, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("task", change)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// taskError maps task service errors to HTTP responses.
func taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTaskNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c)
	}
}
