package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainhub/scheduler-api/internal/service"
	"github.com/trainhub/scheduler-api/pkg/response"
)

// CollegeHandler exposes the client college directory.
type CollegeHandler struct {
	colleges *service.CollegeService
}

// NewCollegeHandler constructs a new CollegeHandler.
func NewCollegeHandler(colleges *service.CollegeService) *CollegeHandler {
	return &CollegeHandler{colleges: colleges}
}

// List godoc
// @Summary List client colleges
// @Tags Colleges
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	colleges, err := h.colleges.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, nil)
}

// Get godoc
// @Summary Get college detail
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Router /colleges/{id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.colleges.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}
