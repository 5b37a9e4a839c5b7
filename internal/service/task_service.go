package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "todolist/internal/errors"
	"todolist/internal/model"
	"todolist/internal/repository"
)

// TaskService exposes task operations scoped to an owner. Every method takes
// the resolved owner id explicitly; it is never re-derived internally.
type TaskService interface {
	Create(ctx context.Context, ownerID string, task *model.Task) (*model.Task, error)
	ListForOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	Update(ctx context.Context, ownerID string, taskID uint, patch *model.Task) error
	Delete(ctx context.Context, ownerID string, taskID uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService builds a TaskService with the given repository.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// Create validates the draft and persists it under ownerID. Any owner or id
// the caller supplied on the draft is overwritten.
func (s *taskService) Create(ctx context.Context, ownerID string, task *model.Task) (*model.Task, error) {
	if task.Title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if task.Priority == "" {
		return nil, apperrors.ErrPriorityRequired
	}

	task.ID = 0
	task.UserID = ownerID
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListForOwner returns all of the owner's tasks. An empty result is not an
// error; the caller decides how to surface it.
func (s *taskService) ListForOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update overwrites the mutable fields of the owner's task. A task id that
// exists under another owner reports not-found, same as a missing id.
func (s *taskService) Update(ctx context.Context, ownerID string, taskID uint, patch *model.Task) error {
	existing, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}

	// id and user_id are immutable; only these six fields come from the patch
	existing.Title = patch.Title
	existing.Description = patch.Description
	existing.IsCompleted = patch.IsCompleted
	existing.DueDate = patch.DueDate
	existing.ReminderDate = patch.ReminderDate
	existing.Priority = patch.Priority

	if err := s.repo.Save(ctx, existing); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes the owner's task. Deleting an already-deleted or foreign
// task reports not-found.
func (s *taskService) Delete(ctx context.Context, ownerID string, taskID uint) error {
	rows, err := s.repo.DeleteByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
