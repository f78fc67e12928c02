package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/internal/schedule"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

type scheduleInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// newTaskID generates a time-based task identifier. The uuid suffix keeps ids
// unique when several tasks are created within the same millisecond.
func newTaskID() string {
	return fmt.Sprintf("task-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// TaskService manages task lifecycle: create, edit, status transitions and
// deletion, each persisting immediately.
type TaskService struct {
	repo      taskRepository
	cache     scheduleInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs the service.
func NewTaskService(repo taskRepository, cache scheduleInvalidator, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateTaskRequest describes the create payload. Dates use YYYY-MM-DD.
type CreateTaskRequest struct {
	TrainerID   string  `json:"trainer_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=training non-training"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     string  `json:"end_date" validate:"required"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	CollegeID   *string `json:"college_id"`
	Course      *string `json:"course"`
	Status      string  `json:"status"`
	TrainerRole *string `json:"trainer_role"`
}

// List returns tasks matching the filter.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return tasks, pagination, nil
}

// Get returns a task by id.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get task")
	}
	return task, nil
}

// Create registers a new task with a freshly generated identifier.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	task, err := s.buildTask(req)
	if err != nil {
		return nil, err
	}
	task.ID = newTaskID()

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	s.invalidateSchedules(ctx)
	return task, nil
}

// Update fully replaces a task by identifier.
func (s *TaskService) Update(ctx context.Context, id string, req CreateTaskRequest) (*models.Task, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	task, err := s.buildTask(req)
	if err != nil {
		return nil, err
	}
	task.ID = id

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	s.invalidateSchedules(ctx)
	return task, nil
}

// UpdateStatus transitions a task's status.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status string) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = models.NormalizeTaskStatus(status)
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task status")
	}
	s.invalidateSchedules(ctx)
	return task, nil
}

// Delete removes a task by identifier.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	s.invalidateSchedules(ctx)
	return nil
}

func (s *TaskService) buildTask(req CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be YYYY-MM-DD")
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be on or after start_date")
	}

	task := &models.Task{
		TrainerID:   req.TrainerID,
		Type:        models.NormalizeTaskType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      models.NormalizeTaskStatus(req.Status),
	}

	// Time-of-day, college, course and role only apply to trainings.
	if task.Type == models.TaskTypeTraining {
		task.StartTime = req.StartTime
		task.EndTime = req.EndTime
		task.CollegeID = req.CollegeID
		task.Course = req.Course
		if req.TrainerRole != nil {
			role := models.NormalizeTrainerRole(*req.TrainerRole)
			task.TrainerRole = &role
		}
	}

	return task, nil
}

func (s *TaskService) invalidateSchedules(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "schedule:*"); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.Error(err))
	}
}
