package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/trainhub/scheduler-api/internal/models"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

type trainerRepository interface {
	List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, int, error)
	FindByID(ctx context.Context, id string) (*models.Trainer, error)
	UpdateProfile(ctx context.Context, trainer *models.Trainer) error
}

// TrainerService exposes the trainer roster and the profile-edit passthrough.
type TrainerService struct {
	repo      trainerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainerService constructs the service.
func NewTrainerService(repo trainerRepository, validate *validator.Validate, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{repo: repo, validator: validate, logger: logger}
}

// UpdateTrainerRequest describes the profile-edit payload.
type UpdateTrainerRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	Specializations []string `json:"specializations"`
	Availability    bool     `json:"availability"`
	Bio             *string  `json:"bio"`
	Expertise       *string  `json:"expertise"`
}

// List returns trainers matching the filter.
func (s *TrainerService) List(ctx context.Context, filter models.TrainerFilter) ([]models.Trainer, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	trainers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trainers")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return trainers, pagination, nil
}

// Get returns a trainer by id.
func (s *TrainerService) Get(ctx context.Context, id string) (*models.Trainer, error) {
	trainer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get trainer")
	}
	return trainer, nil
}

// UpdateProfile replaces a trainer's editable profile fields.
func (s *TrainerService) UpdateProfile(ctx context.Context, id string, req UpdateTrainerRequest) (*models.Trainer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	trainer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	trainer.Name = req.Name
	trainer.Email = req.Email
	trainer.Phone = req.Phone
	trainer.Specializations = pq.StringArray(req.Specializations)
	trainer.Availability = req.Availability
	trainer.Bio = req.Bio
	trainer.Expertise = req.Expertise

	if err := s.repo.UpdateProfile(ctx, trainer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update trainer")
	}
	return trainer, nil
}
