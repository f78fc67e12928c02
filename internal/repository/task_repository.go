package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainhub/scheduler-api/internal/models"
)

const taskColumns = "id, trainer_id, type, title, description, start_date, end_date, start_time, end_time, college_id, course, status, trainer_role, created_at, updated_at"

// TaskRepository manages persistence for tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks matching filters along with total count.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error) {
	base := "FROM tasks WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TrainerID != "" {
		conditions = append(conditions, fmt.Sprintf("trainer_id = $%d", len(args)+1))
		args = append(args, filter.TrainerID)
	}
	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, *filter.Type)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("end_date >= $%d", len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", len(args)+1))
		args = append(args, *filter.EndDate)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY start_date ASC, created_at ASC LIMIT %d OFFSET %d", taskColumns, base, size, offset)
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}

// ListOverlapping returns every task whose date range intersects [start, end],
// preserving start-date order.
func (r *TaskRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE start_date <= $1 AND end_date >= $2 ORDER BY start_date ASC, created_at ASC", taskColumns)
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, end, start); err != nil {
		return nil, fmt.Errorf("list overlapping tasks: %w", err)
	}
	return tasks, nil
}

// FindByID fetches a task by ID.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a task.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	const query = `INSERT INTO tasks (id, trainer_id, type, title, description, start_date, end_date, start_time, end_time, college_id, course, status, trainer_role, created_at, updated_at)
		VALUES (:id, :trainer_id, :type, :title, :description, :start_date, :end_date, :start_time, :end_time, :college_id, :course, :status, :trainer_role, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("insert task %s: %w", task.ID, err)
	}
	return nil
}

// CreateBatch inserts all tasks inside one transaction. Either every task
// persists or none does.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO tasks (id, trainer_id, type, title, description, start_date, end_date, start_time, end_time, college_id, course, status, trainer_role, created_at, updated_at)
		VALUES (:id, :trainer_id, :type, :title, :description, :start_date, :end_date, :start_time, :end_time, :college_id, :course, :status, :trainer_role, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range tasks {
		tasks[i].CreatedAt = now
		tasks[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, tasks[i]); err != nil {
			return fmt.Errorf("insert imported task %s: %w", tasks[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

// Update replaces a task by identifier.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	const query = `UPDATE tasks SET trainer_id = :trainer_id, type = :type, title = :title, description = :description,
		start_date = :start_date, end_date = :end_date, start_time = :start_time, end_time = :end_time,
		college_id = :college_id, course = :course, status = :status, trainer_role = :trainer_role, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, task)
	if err != nil {
		return fmt.Errorf("update task %s: %w", task.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update task %s: no rows affected", task.ID)
	}
	return nil
}

// Delete removes a task by identifier.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}
