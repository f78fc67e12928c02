package handler

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/internal/service"
	"github.com/trainhub/scheduler-api/pkg/config"
)

func newExportHandlerFixture() *ExportHandler {
	tasks := &fakeTaskLister{tasks: []models.Task{{
		ID:        "task-1",
		TrainerID: "trainer-a",
		Type:      models.TaskTypeTraining,
		Title:     "Go onboarding",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.TaskStatusPending,
	}}}
	trainers := &fakeTrainerLister{trainers: []models.Trainer{
		{ID: "trainer-a", Name: "Asha", Email: "asha@example.com"},
	}}
	svc := service.NewExportService(tasks, trainers, fakeCollegeLister{}, nil, nil, nil, config.ExportConfig{MaxRangeDays: 366}, nil)
	return NewExportHandler(svc)
}

func TestExportHandlerCalendarCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/calendar?start_date=2025-04-01&end_date=2025-04-02&format=csv", nil)

	handler.Calendar(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="calendar_2025-04-01_to_2025-04-02.csv"`)

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one task row plus one placeholder row")
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, "Asha", records[1][2])
	assert.Equal(t, "2025-04-02", records[2][0])
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/calendar?start_date=2025-04-01&format=xlsx", nil)

	handler.Calendar(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerRejectsMalformedDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerFixture()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/calendar?start_date=April+1", nil)

	handler.Calendar(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
