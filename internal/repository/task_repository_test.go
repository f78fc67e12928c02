package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/scheduler-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func taskRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "trainer_id", "type", "title", "description", "start_date", "end_date", "start_time", "end_time", "college_id", "course", "status", "trainer_role", "created_at", "updated_at"}).
		AddRow("task-1", "trainer-1", "training", "Go bootcamp", nil, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), nil, nil, nil, nil, "pending", nil, now, now)
}

func TestTaskRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + taskColumns + " FROM tasks WHERE 1=1 ORDER BY start_date ASC, created_at ASC LIMIT 50 OFFSET 0")).
		WillReturnRows(taskRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	tasks, total, err := repo.List(context.Background(), models.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	taskType := models.TaskTypeTraining
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	filter := models.TaskFilter{TrainerID: "trainer-1", Type: &taskType, StartDate: &start, Page: 2, PageSize: 10}

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE 1=1 AND trainer_id = $1 AND type = $2 AND end_date >= $3 ORDER BY start_date ASC, created_at ASC LIMIT 10 OFFSET 10")).
		WithArgs("trainer-1", taskType, start).
		WillReturnRows(taskRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks WHERE 1=1 AND trainer_id = $1 AND type = $2 AND end_date >= $3")).
		WithArgs("trainer-1", taskType, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	tasks, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryListOverlapping(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE start_date <= $1 AND end_date >= $2 ORDER BY start_date ASC, created_at ASC")).
		WithArgs(end, start).
		WillReturnRows(taskRows())

	tasks, err := repo.ListOverlapping(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.Task{ID: "task-1", TrainerID: "trainer-1", Type: models.TaskTypeTraining, Title: "Go bootcamp",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Status: models.TaskStatusPending}
	require.NoError(t, repo.Create(context.Background(), task))
	assert.False(t, task.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCreateBatchCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tasks := []models.Task{
		{ID: "task-1", TrainerID: "trainer-1", Type: models.TaskTypeTraining, Title: "A", StartDate: time.Now(), EndDate: time.Now(), Status: models.TaskStatusPending},
		{ID: "task-2", TrainerID: "trainer-2", Type: models.TaskTypeNonTraining, Title: "B", StartDate: time.Now(), EndDate: time.Now(), Status: models.TaskStatusPending},
	}
	require.NoError(t, repo.CreateBatch(context.Background(), tasks))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryCreateBatchRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tasks").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	tasks := []models.Task{
		{ID: "task-1", TrainerID: "trainer-1", Type: models.TaskTypeTraining, Title: "A", StartDate: time.Now(), EndDate: time.Now(), Status: models.TaskStatusPending},
		{ID: "task-2", TrainerID: "trainer-2", Type: models.TaskTypeNonTraining, Title: "B", StartDate: time.Now(), EndDate: time.Now(), Status: models.TaskStatusPending},
	}
	err := repo.CreateBatch(context.Background(), tasks)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE tasks SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	task := &models.Task{ID: "task-missing", TrainerID: "trainer-1", Type: models.TaskTypeTraining, Title: "A",
		StartDate: time.Now(), EndDate: time.Now(), Status: models.TaskStatusPending}
	err := repo.Update(context.Background(), task)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows affected")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("DELETE FROM tasks WHERE id").
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "task-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
