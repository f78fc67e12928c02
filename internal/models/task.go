package models

import (
	"strings"
	"time"
)

// TaskType distinguishes training engagements from other duties.
type TaskType string

const (
	TaskTypeTraining    TaskType = "training"
	TaskTypeNonTraining TaskType = "non-training"
)

// NormalizeTaskType folds arbitrary input to a valid TaskType. Anything that is
// not exactly "training" (case-insensitive) counts as non-training.
func NormalizeTaskType(raw string) TaskType {
	if strings.EqualFold(strings.TrimSpace(raw), string(TaskTypeTraining)) {
		return TaskTypeTraining
	}
	return TaskTypeNonTraining
}

// TaskStatus tracks task progress.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// NormalizeTaskStatus folds arbitrary input to a valid TaskStatus, defaulting
// to pending.
func NormalizeTaskStatus(raw string) TaskStatus {
	switch TaskStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case TaskStatusInProgress:
		return TaskStatusInProgress
	case TaskStatusCompleted:
		return TaskStatusCompleted
	default:
		return TaskStatusPending
	}
}

// TrainerRole is the capacity a trainer serves in on a training task.
type TrainerRole string

const (
	TrainerRoleTrainer TrainerRole = "trainer"
	TrainerRoleTA      TrainerRole = "ta"
)

// NormalizeTrainerRole folds arbitrary input to a valid TrainerRole. Anything
// that is not exactly "ta" (case-insensitive) counts as trainer.
func NormalizeTrainerRole(raw string) TrainerRole {
	if strings.EqualFold(strings.TrimSpace(raw), string(TrainerRoleTA)) {
		return TrainerRoleTA
	}
	return TrainerRoleTrainer
}

// Task is a unit of work assigned to a trainer over an inclusive date range.
type Task struct {
	ID          string       `db:"id" json:"id"`
	TrainerID   string       `db:"trainer_id" json:"trainer_id"`
	Type        TaskType     `db:"type" json:"type"`
	Title       string       `db:"title" json:"title"`
	Description *string      `db:"description" json:"description,omitempty"`
	StartDate   time.Time    `db:"start_date" json:"start_date"`
	EndDate     time.Time    `db:"end_date" json:"end_date"`
	StartTime   *string      `db:"start_time" json:"start_time,omitempty"`
	EndTime     *string      `db:"end_time" json:"end_time,omitempty"`
	CollegeID   *string      `db:"college_id" json:"college_id,omitempty"`
	Course      *string      `db:"course" json:"course,omitempty"`
	Status      TaskStatus   `db:"status" json:"status"`
	TrainerRole *TrainerRole `db:"trainer_role" json:"trainer_role,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	TrainerID string
	Type      *TaskType
	Status    *TaskStatus
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
