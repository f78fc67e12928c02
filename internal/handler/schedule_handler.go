package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainhub/scheduler-api/internal/service"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
	"github.com/trainhub/scheduler-api/pkg/response"
)

// ScheduleHandler exposes the reconciled day schedule and calendar views.
type ScheduleHandler struct {
	schedules *service.ScheduleService
}

// NewScheduleHandler constructs a new ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Day godoc
// @Summary Reconciled schedule for a single day
// @Description Partitions tasks covering the date into training and
// @Description non-training assignments and lists trainers left unassigned.
// @Tags Schedule
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param specialization query string false "Restrict to trainers holding this tag"
// @Success 200 {object} response.Envelope
// @Router /schedule/day [get]
func (h *ScheduleHandler) Day(c *gin.Context) {
	date, err := requireDateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}

	day, cacheHit, err := h.schedules.DaySchedule(c.Request.Context(), date, c.Query("specialization"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day, nil, map[string]interface{}{"cache_hit": cacheHit})
}

// Calendar godoc
// @Summary Calendar events over a date range
// @Tags Schedule
// @Produce json
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	start, err := requireDateQuery(c, "start_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := requireDateQuery(c, "end_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	if end.Before(start) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end_date must not precede start_date"))
		return
	}

	events, err := h.schedules.CalendarEvents(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}
