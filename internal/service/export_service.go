package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/internal/schedule"
	"github.com/trainhub/scheduler-api/pkg/config"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
	"github.com/trainhub/scheduler-api/pkg/export"
)

// ExportFormat selects the rendered artifact type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// CalendarExportHeaders is the canonical export header row.
var CalendarExportHeaders = []string{"Date", "TrainerID", "TrainerName", "Email", "Phone", "Task", "TaskType", "Role", "ClientLocation", "Status"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportRequest selects the exported date range and format. A nil range
// defaults to the current calendar month; a nil end collapses to the start.
type ExportRequest struct {
	Start  *time.Time
	End    *time.Time
	Format ExportFormat
}

// ExportArtifact is a rendered export ready for download.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Payload     []byte
	RowCount    int
}

// ExportService renders calendar exports: one row per task per covered day,
// with a placeholder row keeping continuity for days without coverage.
type ExportService struct {
	tasks    overlappingTaskLister
	trainers trainerLister
	colleges collegeLister
	csv      csvRenderer
	pdf      pdfRenderer
	metrics  *MetricsService
	cfg      config.ExportConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(tasks overlappingTaskLister, trainers trainerLister, colleges collegeLister, csv csvRenderer, pdf pdfRenderer, metrics *MetricsService, cfg config.ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = 366
	}
	return &ExportService{
		tasks:    tasks,
		trainers: trainers,
		colleges: colleges,
		csv:      csv,
		pdf:      pdf,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate builds and renders the calendar export for the requested range.
func (s *ExportService) Generate(ctx context.Context, req ExportRequest) (*ExportArtifact, error) {
	start, end, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}

	dataset, rowCount, err := s.buildDataset(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var payload []byte
	var contentType string
	format := req.Format
	if format == "" {
		format = ExportFormatCSV
	}
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, fmt.Sprintf("Calendar %s to %s", formatDay(start), formatDay(end)))
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.metrics.RecordExportRows(rowCount)
	s.logger.Info("calendar export generated",
		zap.String("start", formatDay(start)),
		zap.String("end", formatDay(end)),
		zap.String("format", string(format)),
		zap.Int("rows", rowCount),
	)

	return &ExportArtifact{
		Filename:    fmt.Sprintf("calendar_%s_to_%s.%s", formatDay(start), formatDay(end), format),
		ContentType: contentType,
		Payload:     payload,
		RowCount:    rowCount,
	}, nil
}

func (s *ExportService) resolveRange(req ExportRequest) (time.Time, time.Time, error) {
	var start, end time.Time
	switch {
	case req.Start == nil:
		// No explicit range: export the current calendar month.
		start, end = schedule.MonthBounds(s.now())
	case req.End == nil:
		start = schedule.Day(*req.Start)
		end = start
	default:
		start = schedule.Day(*req.Start)
		end = schedule.Day(*req.End)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "end date must be on or after start date")
	}
	if days := len(schedule.EnumerateDays(start, end)); days > s.cfg.MaxRangeDays {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("range spans %d days, maximum is %d", days, s.cfg.MaxRangeDays))
	}
	return start, end, nil
}

func (s *ExportService) buildDataset(ctx context.Context, start, end time.Time) (export.Dataset, int, error) {
	tasks, err := s.tasks.ListOverlapping(ctx, start, end)
	if err != nil {
		return export.Dataset{}, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tasks")
	}
	trainers, err := s.trainers.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainers")
	}
	colleges, err := s.colleges.ListAll(ctx)
	if err != nil {
		return export.Dataset{}, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load colleges")
	}

	trainerByID := make(map[string]models.Trainer, len(trainers))
	for _, t := range trainers {
		trainerByID[t.ID] = t
	}
	collegeByID := make(map[string]models.College, len(colleges))
	for _, c := range colleges {
		collegeByID[c.ID] = c
	}

	dataset := export.Dataset{Headers: CalendarExportHeaders}
	for _, day := range schedule.EnumerateDays(start, end) {
		covered := schedule.TasksOnDate(day, tasks)
		if len(covered) == 0 {
			// Placeholder row keeps one-row-per-day continuity.
			dataset.Rows = append(dataset.Rows, []string{formatDay(day), "", "", "", "", "", "", "", "", ""})
			continue
		}
		for _, task := range covered {
			dataset.Rows = append(dataset.Rows, s.buildRow(day, task, trainerByID, collegeByID))
		}
	}

	return dataset, len(dataset.Rows), nil
}

func (s *ExportService) buildRow(day time.Time, task models.Task, trainerByID map[string]models.Trainer, collegeByID map[string]models.College) []string {
	var trainerName, email, phone string
	if trainer, ok := trainerByID[task.TrainerID]; ok {
		trainerName = trainer.Name
		email = trainer.Email
		phone = trainer.Phone
	} else {
		trainerName = schedule.UnknownTrainerName
	}

	role := string(models.TrainerRoleTrainer)
	if task.TrainerRole != nil {
		role = string(*task.TrainerRole)
	}

	var location string
	if task.CollegeID != nil {
		if college, ok := collegeByID[*task.CollegeID]; ok {
			location = college.Name
		}
	}

	return []string{
		formatDay(day),
		task.TrainerID,
		trainerName,
		email,
		phone,
		task.Title,
		string(task.Type),
		role,
		location,
		string(task.Status),
	}
}

func formatDay(t time.Time) string {
	return schedule.Day(t).Format(schedule.DateLayout)
}
