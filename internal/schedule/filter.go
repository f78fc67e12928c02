package schedule

import "github.com/trainhub/scheduler-api/internal/models"

// FilterAssignments retains assignments whose trainer carries the given
// specialization tag. An empty tag returns the input unchanged.
func FilterAssignments(items []models.Assignment, tag string) []models.Assignment {
	if tag == "" {
		return items
	}
	var matched []models.Assignment
	for _, item := range items {
		if item.Trainer.HasSpecialization(tag) {
			matched = append(matched, item)
		}
	}
	return matched
}

// FilterTrainers retains trainers carrying the given specialization tag. An
// empty tag returns the input unchanged.
func FilterTrainers(items []models.Trainer, tag string) []models.Trainer {
	if tag == "" {
		return items
	}
	var matched []models.Trainer
	for _, item := range items {
		if item.HasSpecialization(tag) {
			matched = append(matched, item)
		}
	}
	return matched
}

// FilterDaySchedule applies the specialization tag across every bucket of a
// day schedule.
func FilterDaySchedule(day models.DaySchedule, tag string) models.DaySchedule {
	if tag == "" {
		return day
	}
	return models.DaySchedule{
		Date:              day.Date,
		Training:          FilterAssignments(day.Training, tag),
		NonTraining:       FilterAssignments(day.NonTraining, tag),
		AvailableTrainers: FilterTrainers(day.AvailableTrainers, tag),
	}
}
