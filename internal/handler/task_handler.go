package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"ganttboard/internal/model"
	"ganttboard/internal/notify"
	"ganttboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// TaskStore is the persistence contract the handler depends on. The gorm
// repository is the production implementation; tests substitute doubles.
type TaskStore interface {
	List(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, id uint, updates map[string]any) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
}

// OverdueChecker runs the on-demand overdue check.
type OverdueChecker interface {
	CheckOverdue(ctx context.Context) (notify.Result, error)
}

type TaskHandler struct {
	store   TaskStore
	checker OverdueChecker
}

func NewTaskHandler(store TaskStore, checker OverdueChecker) *TaskHandler {
	return &TaskHandler{store: store, checker: checker}
}

// Date layouts clients actually send: full RFC 3339 timestamps or bare
// YYYY-MM-DD dates from a date picker.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate coerces an ISO-8601 value into a timestamp. Dates arrive as raw
// strings and are parsed per field so a failure can name the offending field.
func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected an ISO-8601 value", raw)
}

// optionalString distinguishes a field absent from the payload from an explicit
// JSON null, so a partial update can clear an optional column.
type optionalString struct {
	set   bool
	value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

type createTaskRequest struct {
	Name        string  `json:"name" binding:"required"`
	Segment     string  `json:"segment"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
	Progress    *int    `json:"progress"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
	Assignee    *string `json:"assignee"`
}

type updateTaskRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=1"`
	Segment     *string        `json:"segment"`
	StartDate   *string        `json:"startDate"`
	EndDate     *string        `json:"endDate"`
	Progress    *int           `json:"progress"`
	Status      *string        `json:"status"`
	Description optionalString `json:"description"`
	Assignee    optionalString `json:"assignee"`
}

// List returns every task ordered by start date, with isOverdue recomputed
// against the current wall clock. The persisted flag is never trusted here.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve tasks"})
		return
	}

	now := time.Now()
	for i := range tasks {
		tasks[i].IsOverdue = tasks[i].OverdueAt(now)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	c.JSON(http.StatusOK, tasks)
}

// GetByID returns a single task or 404.
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// Create validates the input schema and persists a new task. The first failing
// field short-circuits with a 400 naming that field; nothing is written.
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message, field := validationDetails(req, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": message, "field": field})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "field": "startDate"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "field": "endDate"})
		return
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": statusMessage, "field": "status"})
		return
	}

	task := model.Task{
		Name:        req.Name,
		Segment:     req.Segment,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      req.Status,
		Description: req.Description,
		Assignee:    req.Assignee,
	}
	if task.Segment == "" {
		task.Segment = "General"
	}
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}

	if err := h.store.Create(c.Request.Context(), &task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update merges the supplied fields into an existing task. Omitted fields keep
// their prior values, an explicit null clears an optional field, and concurrent
// updates are last-write-wins.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message, field := validationDetails(req, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": message, "field": field})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Segment != nil {
		updates["segment"] = *req.Segment
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "field": "startDate"})
			return
		}
		updates["start_date"] = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "field": "endDate"})
			return
		}
		updates["end_date"] = endDate
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": statusMessage, "field": "status"})
			return
		}
		updates["status"] = *req.Status
	}
	if req.Description.set {
		updates["description"] = req.Description.value
	}
	if req.Assignee.set {
		updates["assignee"] = req.Assignee.value
	}

	task, err := h.store.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task. Deleting an absent id still succeeds with 204.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckOverdue triggers the on-demand overdue check. Provider failures are
// folded into the result message; only a store failure becomes an HTTP error.
func (h *TaskHandler) CheckOverdue(c *gin.Context) {
	result, err := h.checker.CheckOverdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check overdue tasks"})
		return
	}

	c.JSON(http.StatusOK, result)
}

const statusMessage = "status must be one of: todo, in-progress, done"

func parseTaskID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID", "field": "id"})
		return 0, false
	}
	return uint(id), true
}

// validationDetails extracts the first offending field and a human message from a
// binding error, mirroring the {message, field} response contract.
func validationDetails(req any, err error) (string, string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(req, fe.StructField())
		switch fe.Tag() {
		case "required":
			return field + " is required", field
		case "min":
			return field + " must not be empty", field
		default:
			return field + " is invalid", field
		}
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return "invalid value for " + ute.Field, ute.Field
	}

	return err.Error(), ""
}

// jsonFieldName maps a Go struct field back to its wire name.
func jsonFieldName(req any, structField string) string {
	t := reflect.TypeOf(req)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			return tag
		}
	}
	return structField
}
