package models

// CalendarEvent is a Task enriched at read time with display names for the
// owning trainer and, when present, the college. It is never persisted.
type CalendarEvent struct {
	Task
	TrainerName string  `json:"trainer_name"`
	CollegeName *string `json:"college_name,omitempty"`
}

// Assignment pairs a trainer with a task covering a specific date, plus the
// associated college when the task is a training engagement.
type Assignment struct {
	Trainer Trainer  `json:"trainer"`
	Task    Task     `json:"task"`
	College *College `json:"college,omitempty"`
}

// DaySchedule partitions the roster's coverage state for one calendar date:
// trainers assigned a training task, trainers assigned other duties, and
// trainers with no covering task at all.
type DaySchedule struct {
	Date              string       `json:"date"`
	Training          []Assignment `json:"training"`
	NonTraining       []Assignment `json:"non_training"`
	AvailableTrainers []Trainer    `json:"available_trainers"`
}
