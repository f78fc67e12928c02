package models

import (
	"time"

	"github.com/lib/pq"
)

// Trainer represents a roster member who can be assigned tasks.
type Trainer struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Email           string         `db:"email" json:"email"`
	Phone           string         `db:"phone" json:"phone"`
	Specializations pq.StringArray `db:"specializations" json:"specializations" swaggertype:"array,string"`
	Availability    bool           `db:"availability" json:"availability"`
	Bio             *string        `db:"bio" json:"bio,omitempty"`
	Expertise       *string        `db:"expertise" json:"expertise,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// HasSpecialization reports whether the trainer carries the given tag.
// Matching is case-sensitive; tags behave as a set.
func (t Trainer) HasSpecialization(tag string) bool {
	for _, s := range t.Specializations {
		if s == tag {
			return true
		}
	}
	return false
}

// TrainerFilter captures filtering options for listing trainers.
type TrainerFilter struct {
	Search         string
	Specialization string
	Available      *bool
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}
