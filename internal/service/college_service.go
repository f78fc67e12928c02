package service

import (
	"context"
	"database/sql"

	"github.com/trainhub/scheduler-api/internal/models"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

type collegeRepository interface {
	ListAll(ctx context.Context) ([]models.College, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
}

// CollegeService reads the static client/college registry.
type CollegeService struct {
	repo collegeRepository
}

// NewCollegeService constructs the service.
func NewCollegeService(repo collegeRepository) *CollegeService {
	return &CollegeService{repo: repo}
}

// List returns every registered college.
func (s *CollegeService) List(ctx context.Context) ([]models.College, error) {
	colleges, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list colleges")
	}
	return colleges, nil
}

// Get returns a college by id.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get college")
	}
	return college, nil
}
