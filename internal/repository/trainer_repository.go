package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainhub/scheduler-api/internal/models"
)

const trainerColumns = "id, name, email, phone, specializations, availability, bio, expertise, created_at, updated_at"

// TrainerRepository manages persistence for the trainer roster.
type TrainerRepository struct {
	db *sqlx.DB
}

// NewTrainerRepository constructs a TrainerRepository.
func NewTrainerRepository(db *sqlx.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

// List returns trainers matching filters along with total count.
func (r *TrainerRepository) List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error) {
	base := "FROM trainers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Available != nil {
		conditions = append(conditions, fmt.Sprintf("availability = $%d", len(args)+1))
		args = append(args, *filter.Available)
	}
	if filter.Specialization != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(specializations)", len(args)+1))
		args = append(args, filter.Specialization)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "id"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", trainerColumns, base, column, order, size, offset)
	var trainers []models.Trainer
	if err := r.db.SelectContext(ctx, &trainers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list trainers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count trainers: %w", err)
	}

	return trainers, total, nil
}

// ListAll returns the full roster in stable id order.
func (r *TrainerRepository) ListAll(ctx context.Context) ([]models.Trainer, error) {
	query := fmt.Sprintf("SELECT %s FROM trainers ORDER BY id ASC", trainerColumns)
	var trainers []models.Trainer
	if err := r.db.SelectContext(ctx, &trainers, query); err != nil {
		return nil, fmt.Errorf("list all trainers: %w", err)
	}
	return trainers, nil
}

// FindByID fetches a trainer by ID.
func (r *TrainerRepository) FindByID(ctx context.Context, id string) (*models.Trainer, error) {
	query := fmt.Sprintf("SELECT %s FROM trainers WHERE id = $1", trainerColumns)
	var trainer models.Trainer
	if err := r.db.GetContext(ctx, &trainer, query, id); err != nil {
		return nil, err
	}
	return &trainer, nil
}

// UpdateProfile persists an edited trainer profile.
func (r *TrainerRepository) UpdateProfile(ctx context.Context, trainer *models.Trainer) error {
	trainer.UpdatedAt = time.Now().UTC()

	const query = `UPDATE trainers SET name = :name, email = :email, phone = :phone, specializations = :specializations,
		availability = :availability, bio = :bio, expertise = :expertise, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, trainer)
	if err != nil {
		return fmt.Errorf("update trainer %s: %w", trainer.ID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update trainer %s: no rows affected", trainer.ID)
	}
	return nil
}
