package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/trainhub/scheduler-api/internal/dto"
	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/internal/schedule"
	"github.com/trainhub/scheduler-api/pkg/config"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

// Spreadsheet import column names. Header matching is exact.
const (
	importColDate        = "Date"
	importColTrainerID   = "TrainerID"
	importColTask        = "Task"
	importColTaskType    = "TaskType"
	importColRole        = "Role"
	importColStatus      = "Status"
	importColClientID    = "ClientID"
	importColDescription = "Description"
)

type taskBatchCreator interface {
	CreateBatch(ctx context.Context, tasks []models.Task) error
}

// ImportService validates and normalizes externally supplied event records
// into canonical tasks. Batches are atomic: the first invalid record rejects
// the whole import and nothing is persisted.
type ImportService struct {
	repo    taskBatchCreator
	cache   scheduleInvalidator
	metrics *MetricsService
	cfg     config.ImportConfig
	logger  *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(repo taskBatchCreator, cache scheduleInvalidator, metrics *MetricsService, cfg config.ImportConfig, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 5000
	}
	return &ImportService{repo: repo, cache: cache, metrics: metrics, cfg: cfg, logger: logger}
}

// ImportEvents accepts a structured batch of event records.
func (s *ImportService) ImportEvents(ctx context.Context, records []dto.ImportEventRecord) (*dto.ImportResult, error) {
	tasks, err := s.normalize(records)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, tasks)
}

// ImportSpreadsheet parses an xlsx workbook's first sheet and imports its
// rows. Expected columns: Date, TrainerID, Task, TaskType, Role, Status,
// ClientID, Description.
func (s *ImportService) ImportSpreadsheet(ctx context.Context, reader io.Reader) (*dto.ImportResult, error) {
	records, err := s.parseSpreadsheet(reader)
	if err != nil {
		return nil, err
	}

	tasks, err := s.normalize(records)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, tasks)
}

func (s *ImportService) parseSpreadsheet(reader io.Reader) ([]dto.ImportEventRecord, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFailed.Code, appErrors.ErrImportFailed.Status, "unreadable spreadsheet file")
	}
	defer workbook.Close() //nolint:errcheck

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrImportFailed.Code, appErrors.ErrImportFailed.Status, "failed to read worksheet")
	}
	if len(rows) < 2 {
		return nil, appErrors.Clone(appErrors.ErrImportFailed, "spreadsheet contains no data rows")
	}

	colIndex := make(map[string]int)
	for i, header := range rows[0] {
		colIndex[strings.TrimSpace(header)] = i
	}
	for _, required := range []string{importColDate, importColTrainerID, importColTask} {
		if _, ok := colIndex[required]; !ok {
			return nil, appErrors.Clone(appErrors.ErrImportFailed, fmt.Sprintf("missing required column %q", required))
		}
	}

	cell := func(row []string, column string) string {
		idx, ok := colIndex[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]dto.ImportEventRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		date := cell(row, importColDate)
		records = append(records, dto.ImportEventRecord{
			TrainerID:   cell(row, importColTrainerID),
			Title:       cell(row, importColTask),
			Type:        string(models.NormalizeTaskType(cell(row, importColTaskType))),
			StartDate:   date,
			EndDate:     date, // single-day event unless the sheet says otherwise
			Status:      cell(row, importColStatus),
			TrainerRole: cell(row, importColRole),
			CollegeID:   cell(row, importColClientID),
			Description: cell(row, importColDescription),
		})
	}

	return records, nil
}

// normalize validates every record before converting any of them. The first
// violated constraint aborts the batch with a diagnostic naming the record.
func (s *ImportService) normalize(records []dto.ImportEventRecord) ([]models.Task, error) {
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrImportFailed, "import batch is empty")
	}
	if len(records) > s.cfg.MaxRecords {
		return nil, appErrors.Clone(appErrors.ErrImportFailed, fmt.Sprintf("batch of %d records exceeds the limit of %d", len(records), s.cfg.MaxRecords))
	}

	tasks := make([]models.Task, 0, len(records))
	for i, record := range records {
		task, err := s.normalizeRecord(i, record)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *ImportService) normalizeRecord(index int, record dto.ImportEventRecord) (models.Task, error) {
	required := []struct {
		field string
		value string
	}{
		{"trainerId", record.TrainerID},
		{"title", record.Title},
		{"startDate", record.StartDate},
		{"endDate", record.EndDate},
		{"type", record.Type},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return models.Task{}, appErrors.Clone(appErrors.ErrImportFailed, fmt.Sprintf("record %d: missing required field %q", index, item.field))
		}
	}

	start, err := schedule.ParseDate(record.StartDate)
	if err != nil {
		return models.Task{}, appErrors.Clone(appErrors.ErrImportFailed, fmt.Sprintf("record %d: invalid startDate %q, expected YYYY-MM-DD", index, record.StartDate))
	}
	end, err := schedule.ParseDate(record.EndDate)
	if err != nil {
		return models.Task{}, appErrors.Clone(appErrors.ErrImportFailed, fmt.Sprintf("record %d: invalid endDate %q, expected YYYY-MM-DD", index, record.EndDate))
	}
	if end.Before(start) {
		return models.Task{}, appErrors.Clone(appErrors.ErrImportFailed, fmt.Sprintf("record %d: endDate precedes startDate", index))
	}

	task := models.Task{
		ID:        newTaskID(),
		TrainerID: strings.TrimSpace(record.TrainerID),
		Type:      models.NormalizeTaskType(record.Type),
		Title:     strings.TrimSpace(record.Title),
		StartDate: start,
		EndDate:   end,
		Status:    models.NormalizeTaskStatus(record.Status),
	}
	if record.Description != "" {
		description := record.Description
		task.Description = &description
	}

	if task.Type == models.TaskTypeTraining {
		if record.StartTime != "" {
			startTime := record.StartTime
			task.StartTime = &startTime
		}
		if record.EndTime != "" {
			endTime := record.EndTime
			task.EndTime = &endTime
		}
		if record.CollegeID != "" {
			collegeID := record.CollegeID
			task.CollegeID = &collegeID
		}
		if record.Course != "" {
			course := record.Course
			task.Course = &course
		}
		role := models.NormalizeTrainerRole(record.TrainerRole)
		task.TrainerRole = &role
	}

	return task, nil
}

func (s *ImportService) persist(ctx context.Context, tasks []models.Task) (*dto.ImportResult, error) {
	if err := s.repo.CreateBatch(ctx, tasks); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist imported tasks")
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "schedule:*"); err != nil {
			s.logger.Warn("failed to invalidate schedule cache after import", zap.Error(err))
		}
	}
	s.metrics.RecordImportedTasks(len(tasks))
	s.logger.Info("import accepted", zap.Int("tasks", len(tasks)))

	return &dto.ImportResult{
		Imported: len(tasks),
		Message:  fmt.Sprintf("Successfully imported %d events.", len(tasks)),
	}, nil
}
