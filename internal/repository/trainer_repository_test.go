package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/scheduler-api/internal/models"
)

func trainerRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "specializations", "availability", "bio", "expertise", "created_at", "updated_at"}).
		AddRow("trainer-1", "Asha", "asha@example.com", "", pq.StringArray{"golang"}, true, nil, nil, now, now)
}

func TestTrainerRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + trainerColumns + " FROM trainers WHERE 1=1 ORDER BY id ASC LIMIT 50 OFFSET 0")).
		WillReturnRows(trainerRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM trainers WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	trainers, total, err := repo.List(context.Background(), models.TrainerFilter{})
	require.NoError(t, err)
	assert.Len(t, trainers, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, pq.StringArray{"golang"}, trainers[0].Specializations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	available := true
	filter := models.TrainerFilter{Available: &available, Specialization: "golang", Search: "Asha", SortBy: "name", SortOrder: "desc"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM trainers WHERE 1=1 AND availability = $1 AND $2 = ANY(specializations) AND (LOWER(name) LIKE $3 OR LOWER(email) LIKE $3) ORDER BY name DESC LIMIT 50 OFFSET 0")).
		WithArgs(true, "golang", "%asha%").
		WillReturnRows(trainerRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM trainers WHERE 1=1 AND availability = $1 AND $2 = ANY(specializations)")).
		WithArgs(true, "golang", "%asha%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	trainers, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, trainers, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryListRejectsUnknownSortColumn(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id ASC")).
		WillReturnRows(trainerRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, _, err := repo.List(context.Background(), models.TrainerFilter{SortBy: "specializations; DROP TABLE trainers"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trainers WHERE id = $1")).
		WithArgs("trainer-1").
		WillReturnRows(trainerRows())

	trainer, err := repo.FindByID(context.Background(), "trainer-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", trainer.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerRepositoryUpdateProfile(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerRepository(db)

	mock.ExpectExec("UPDATE trainers SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	trainer := &models.Trainer{ID: "trainer-1", Name: "Asha", Email: "asha@example.com", Specializations: pq.StringArray{"golang", "python"}}
	require.NoError(t, repo.UpdateProfile(context.Background(), trainer))
	assert.False(t, trainer.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
