package repository

import (
	"context"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// TaskRepository defines task persistence operations. Every lookup that
// touches a single task is scoped to (id, owner) in the query predicate
// itself, so a task belonging to another user is never loaded at all.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	FindByIDAndOwner(ctx context.Context, id uint, ownerID string) (*model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	DeleteByIDAndOwner(ctx context.Context, id uint, ownerID string) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id uint, ownerID string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// DeleteByIDAndOwner removes the task and reports how many rows matched,
// so callers can tell a repeat delete from a successful one.
func (r *taskRepository) DeleteByIDAndOwner(ctx context.Context, id uint, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Task{})
	return res.RowsAffected, res.Error
}
