package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/internal/schedule"
	"github.com/trainhub/scheduler-api/pkg/config"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

type overlappingTaskLister interface {
	ListOverlapping(ctx context.Context, start, end time.Time) ([]models.Task, error)
}

type trainerLister interface {
	ListAll(ctx context.Context) ([]models.Trainer, error)
}

type collegeLister interface {
	ListAll(ctx context.Context) ([]models.College, error)
}

type scheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ScheduleService answers read-only scheduling queries: per-date assignment
// partitions and calendar event projections. Results are cached when a cache
// is wired in.
type ScheduleService struct {
	tasks    overlappingTaskLister
	trainers trainerLister
	colleges collegeLister
	cache    scheduleCache
	metrics  *MetricsService
	cfg      config.ScheduleConfig
	logger   *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(tasks overlappingTaskLister, trainers trainerLister, colleges collegeLister, cache scheduleCache, metrics *MetricsService, cfg config.ScheduleConfig, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		tasks:    tasks,
		trainers: trainers,
		colleges: colleges,
		cache:    cache,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
	}
}

// DaySchedule computes the assignment partition for one calendar date,
// optionally narrowed by a trainer specialization tag. The boolean result
// reports whether the schedule came from cache.
func (s *ScheduleService) DaySchedule(ctx context.Context, date time.Time, specialization string) (*models.DaySchedule, bool, error) {
	key := dayScheduleCacheKey(date, specialization)
	if s.cacheEnabled() {
		var cached models.DaySchedule
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordScheduleCacheLookup(true)
			return &cached, true, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.RecordScheduleCacheLookup(false)
	}

	tasks, trainers, colleges, err := s.loadCollections(ctx, date, date)
	if err != nil {
		return nil, false, err
	}

	day := schedule.Partition(date, tasks, trainers, colleges)
	day = schedule.FilterDaySchedule(day, specialization)

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, day, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return &day, false, nil
}

// CalendarEvents projects every task overlapping [start, end] into calendar
// events carrying trainer and college display names.
func (s *ScheduleService) CalendarEvents(ctx context.Context, start, end time.Time) ([]models.CalendarEvent, error) {
	if schedule.Day(end).Before(schedule.Day(start)) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must be on or after start date")
	}

	tasks, trainers, colleges, err := s.loadCollections(ctx, start, end)
	if err != nil {
		return nil, err
	}

	trainerByID := make(map[string]models.Trainer, len(trainers))
	for _, t := range trainers {
		trainerByID[t.ID] = t
	}
	collegeByID := make(map[string]models.College, len(colleges))
	for _, c := range colleges {
		collegeByID[c.ID] = c
	}

	events := make([]models.CalendarEvent, 0, len(tasks))
	for _, task := range tasks {
		event := models.CalendarEvent{Task: task, TrainerName: schedule.UnknownTrainerName}
		if trainer, ok := trainerByID[task.TrainerID]; ok {
			event.TrainerName = trainer.Name
		}
		if task.CollegeID != nil {
			if college, ok := collegeByID[*task.CollegeID]; ok {
				name := college.Name
				event.CollegeName = &name
			}
		}
		events = append(events, event)
	}

	return events, nil
}

func (s *ScheduleService) loadCollections(ctx context.Context, start, end time.Time) ([]models.Task, []models.Trainer, []models.College, error) {
	tasks, err := s.tasks.ListOverlapping(ctx, schedule.Day(start), schedule.Day(end))
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tasks")
	}
	trainers, err := s.trainers.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainers")
	}
	colleges, err := s.colleges.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load colleges")
	}
	return tasks, trainers, colleges, nil
}

func (s *ScheduleService) cacheEnabled() bool {
	return s.cache != nil && s.cfg.CacheEnabled
}

func dayScheduleCacheKey(date time.Time, specialization string) string {
	return fmt.Sprintf("schedule:day:%s:spec=%s", schedule.Day(date).Format(schedule.DateLayout), specialization)
}
