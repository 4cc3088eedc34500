package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ganttboard/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List retrieves all tasks ordered by start date
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Order("start_date asc").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Create adds a new task to the database; the generated id is written back
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update merges the given columns into an existing task and returns the updated
// record. Columns absent from the map keep their prior values.
func (r *TaskRepository) Update(ctx context.Context, id uint, updates map[string]any) (*model.Task, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes a task by its ID. Deleting a missing id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id).Error
}

// ListOverdue retrieves tasks whose end date has passed and that are not done,
// evaluated against the wall clock at call time.
func (r *TaskRepository) ListOverdue(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("end_date < ? AND status <> ?", time.Now(), model.StatusDone).
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}
