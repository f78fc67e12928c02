package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trainhub/scheduler-api/internal/models"
)

// CollegeRepository reads the static client/college registry.
type CollegeRepository struct {
	db *sqlx.DB
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

// ListAll returns every registered college.
func (r *CollegeRepository) ListAll(ctx context.Context) ([]models.College, error) {
	const query = `SELECT id, name, location, contact FROM colleges ORDER BY id ASC`
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, query); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// FindByID fetches a college by ID.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	const query = `SELECT id, name, location, contact FROM colleges WHERE id = $1`
	var college models.College
	if err := r.db.GetContext(ctx, &college, query, id); err != nil {
		return nil, err
	}
	return &college, nil
}
