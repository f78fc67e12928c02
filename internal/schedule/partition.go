package schedule

import (
	"time"

	"github.com/trainhub/scheduler-api/internal/models"
)

// UnknownTrainerName is the display name substituted when a task references a
// trainer that is missing from the roster.
const UnknownTrainerName = "Unknown Trainer"

// UnknownTrainer builds the sentinel trainer used for dangling references, so
// renders degrade to a placeholder instead of failing.
func UnknownTrainer(id string) models.Trainer {
	return models.Trainer{ID: id, Name: UnknownTrainerName}
}

// Partition splits the roster's coverage state for one calendar date into
// training assignments, non-training assignments and available trainers.
//
// A trainer is available iff no task covers the date for them; the stored
// availability flag is advisory only and never consulted here. Assignment
// ordering follows task input order, available-trainer ordering follows
// roster order.
func Partition(date time.Time, tasks []models.Task, trainers []models.Trainer, colleges []models.College) models.DaySchedule {
	trainerByID := make(map[string]models.Trainer, len(trainers))
	for _, t := range trainers {
		trainerByID[t.ID] = t
	}
	collegeByID := make(map[string]models.College, len(colleges))
	for _, c := range colleges {
		collegeByID[c.ID] = c
	}

	day := models.DaySchedule{Date: Day(date).Format(DateLayout)}
	assigned := make(map[string]struct{})

	for _, task := range TasksOnDate(date, tasks) {
		trainer, ok := trainerByID[task.TrainerID]
		if !ok {
			trainer = UnknownTrainer(task.TrainerID)
		}
		assigned[task.TrainerID] = struct{}{}

		assignment := models.Assignment{Trainer: trainer, Task: task}
		if task.CollegeID != nil {
			if college, found := collegeByID[*task.CollegeID]; found {
				assignment.College = &college
			}
		}

		if task.Type == models.TaskTypeTraining {
			day.Training = append(day.Training, assignment)
		} else {
			day.NonTraining = append(day.NonTraining, assignment)
		}
	}

	for _, trainer := range trainers {
		if _, busy := assigned[trainer.ID]; !busy {
			day.AvailableTrainers = append(day.AvailableTrainers, trainer)
		}
	}

	return day
}
