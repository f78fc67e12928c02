package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainhub/scheduler-api/internal/models"
	"github.com/trainhub/scheduler-api/pkg/config"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

type stubTaskLister struct {
	tasks []models.Task
	calls int
	err   error
}

func (s *stubTaskLister) ListOverlapping(_ context.Context, start, end time.Time) ([]models.Task, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !task.StartDate.After(end) && !task.EndDate.Before(start) {
			out = append(out, task)
		}
	}
	return out, nil
}

type stubTrainerLister struct {
	trainers []models.Trainer
}

func (s *stubTrainerLister) ListAll(_ context.Context) ([]models.Trainer, error) {
	return s.trainers, nil
}

type stubCollegeLister struct {
	colleges []models.College
}

func (s *stubCollegeLister) ListAll(_ context.Context) ([]models.College, error) {
	return s.colleges, nil
}

type memScheduleCache struct {
	store map[string][]byte
	sets  int
}

func (m *memScheduleCache) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (m *memScheduleCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = payload
	m.sets++
	return nil
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return parsed
}

func scheduleFixture() (*stubTaskLister, *stubTrainerLister, *stubCollegeLister) {
	collegeID := "college-1"
	role := models.TrainerRoleTrainer
	tasks := &stubTaskLister{tasks: []models.Task{
		{
			ID:          "task-1",
			TrainerID:   "trainer-a",
			Type:        models.TaskTypeTraining,
			Title:       "Go onboarding",
			StartDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			CollegeID:   &collegeID,
			TrainerRole: &role,
			Status:      models.TaskStatusPending,
		},
		{
			ID:        "task-2",
			TrainerID: "trainer-b",
			Type:      models.TaskTypeNonTraining,
			Title:     "Content prep",
			StartDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			Status:    models.TaskStatusPending,
		},
	}}
	trainers := &stubTrainerLister{trainers: []models.Trainer{
		{ID: "trainer-a", Name: "Asha", Specializations: pq.StringArray{"golang"}},
		{ID: "trainer-b", Name: "Badri", Specializations: pq.StringArray{"python"}},
		{ID: "trainer-c", Name: "Chitra", Specializations: pq.StringArray{"golang", "python"}},
	}}
	colleges := &stubCollegeLister{colleges: []models.College{
		{ID: "college-1", Name: "Northside Engineering"},
	}}
	return tasks, trainers, colleges
}

func TestScheduleServiceDaySchedulePartition(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	svc := NewScheduleService(tasks, trainers, colleges, nil, nil, config.ScheduleConfig{}, nil)

	day, cacheHit, err := svc.DaySchedule(context.Background(), mustDate(t, "2025-04-02"), "")
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, "2025-04-02", day.Date)
	require.Len(t, day.Training, 1)
	assert.Equal(t, "trainer-a", day.Training[0].Trainer.ID)
	require.NotNil(t, day.Training[0].College)
	assert.Equal(t, "Northside Engineering", day.Training[0].College.Name)
	require.Len(t, day.NonTraining, 1)
	assert.Equal(t, "task-2", day.NonTraining[0].Task.ID)
	require.Len(t, day.AvailableTrainers, 1)
	assert.Equal(t, "trainer-c", day.AvailableTrainers[0].ID)
}

func TestScheduleServiceDayScheduleOutsideRange(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	svc := NewScheduleService(tasks, trainers, colleges, nil, nil, config.ScheduleConfig{}, nil)

	day, _, err := svc.DaySchedule(context.Background(), mustDate(t, "2025-04-03"), "")
	require.NoError(t, err)

	assert.Empty(t, day.Training)
	assert.Empty(t, day.NonTraining)
	assert.Len(t, day.AvailableTrainers, 3, "every trainer is free on an uncovered day")
}

func TestScheduleServiceDayScheduleSpecializationFilter(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	svc := NewScheduleService(tasks, trainers, colleges, nil, nil, config.ScheduleConfig{}, nil)

	day, _, err := svc.DaySchedule(context.Background(), mustDate(t, "2025-04-02"), "golang")
	require.NoError(t, err)

	require.Len(t, day.Training, 1)
	assert.Empty(t, day.NonTraining, "trainer-b lacks the golang tag")
	require.Len(t, day.AvailableTrainers, 1)
	assert.Equal(t, "trainer-c", day.AvailableTrainers[0].ID)
}

func TestScheduleServiceDayScheduleCaching(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	cache := &memScheduleCache{}
	cfg := config.ScheduleConfig{CacheEnabled: true, CacheTTL: time.Minute}
	svc := NewScheduleService(tasks, trainers, colleges, cache, nil, cfg, nil)

	first, cacheHit, err := svc.DaySchedule(context.Background(), mustDate(t, "2025-04-02"), "")
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, cache.sets)

	second, cacheHit, err := svc.DaySchedule(context.Background(), mustDate(t, "2025-04-02"), "")
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, 1, tasks.calls, "cache hit must not touch the repository")
	assert.Equal(t, first.Date, second.Date)
	assert.Len(t, second.Training, len(first.Training))
}

func TestScheduleServiceCacheKeyVariesBySpecialization(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	cache := &memScheduleCache{}
	cfg := config.ScheduleConfig{CacheEnabled: true, CacheTTL: time.Minute}
	svc := NewScheduleService(tasks, trainers, colleges, cache, nil, cfg, nil)

	_, _, err := svc.DaySchedule(context.Background(), mustDate(t, "2025-04-02"), "")
	require.NoError(t, err)
	_, _, err = svc.DaySchedule(context.Background(), mustDate(t, "2025-04-02"), "golang")
	require.NoError(t, err)

	assert.Equal(t, 2, cache.sets, "distinct filters cache under distinct keys")
}

func TestScheduleServiceCalendarEvents(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	tasks.tasks = append(tasks.tasks, models.Task{
		ID:        "task-orphan",
		TrainerID: "trainer-gone",
		Type:      models.TaskTypeNonTraining,
		Title:     "Orphaned",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	svc := NewScheduleService(tasks, trainers, colleges, nil, nil, config.ScheduleConfig{}, nil)

	events, err := svc.CalendarEvents(context.Background(), mustDate(t, "2025-04-01"), mustDate(t, "2025-04-30"))
	require.NoError(t, err)
	require.Len(t, events, 3)

	byID := make(map[string]models.CalendarEvent, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}
	assert.Equal(t, "Asha", byID["task-1"].TrainerName)
	require.NotNil(t, byID["task-1"].CollegeName)
	assert.Equal(t, "Northside Engineering", *byID["task-1"].CollegeName)
	assert.Equal(t, "Unknown Trainer", byID["task-orphan"].TrainerName)
	assert.Nil(t, byID["task-2"].CollegeName)
}

func TestScheduleServiceCalendarEventsInvertedRange(t *testing.T) {
	tasks, trainers, colleges := scheduleFixture()
	svc := NewScheduleService(tasks, trainers, colleges, nil, nil, config.ScheduleConfig{}, nil)

	_, err := svc.CalendarEvents(context.Background(), mustDate(t, "2025-04-30"), mustDate(t, "2025-04-01"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
