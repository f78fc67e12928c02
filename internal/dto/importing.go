package dto

// ImportEventRecord is one externally supplied event in the structured JSON
// import format. Field names follow the documented wire contract.
type ImportEventRecord struct {
	TrainerID   string `json:"trainerId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	CollegeID   string `json:"collegeId,omitempty"`
	Course      string `json:"course,omitempty"`
	Status      string `json:"status,omitempty"`
	TrainerRole string `json:"trainerRole,omitempty"`
}

// ImportResult reports the outcome of an accepted import batch.
type ImportResult struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}
