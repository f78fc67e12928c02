package models

// College represents a client location where trainings run.
type College struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Location string `db:"location" json:"location"`
	Contact  string `db:"contact" json:"contact"`
}
