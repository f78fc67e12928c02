package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/internal/service"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
	"github.com/trainhub/scheduler-api/pkg/response"
)

// TrainerHandler exposes the trainer roster endpoints.
type TrainerHandler struct {
	trainers *service.TrainerService
}

// NewTrainerHandler constructs a new TrainerHandler.
func NewTrainerHandler(trainers *service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainers: trainers}
}

// List godoc
// @Summary List trainers
// @Tags Trainers
// @Produce json
// @Param search query string false "Search by name or email"
// @Param specialization query string false "Filter by specialization tag"
// @Param available query bool false "Filter by declared availability"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /trainers [get]
func (h *TrainerHandler) List(c *gin.Context) {
	filter := models.TrainerFilter{
		Search:         c.Query("search"),
		Specialization: c.Query("specialization"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}

	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid available: expected boolean"))
			return
		}
		filter.Available = &available
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	trainers, pagination, err := h.trainers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainers, pagination)
}

// Get godoc
// @Summary Get trainer detail
// @Tags Trainers
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} response.Envelope
// @Router /trainers/{id} [get]
func (h *TrainerHandler) Get(c *gin.Context) {
	trainer, err := h.trainers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainer, nil)
}

// UpdateProfile godoc
// @Summary Update trainer profile
// @Tags Trainers
// @Accept json
// @Produce json
// @Param id path string true "Trainer ID"
// @Param payload body service.UpdateTrainerRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /trainers/{id} [put]
func (h *TrainerHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}

	trainer, err := h.trainers.UpdateProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trainer, nil)
}
