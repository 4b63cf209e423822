package models

import (
	"gorm.io/gorm"
)

// Candidate is an interviewee identity. Real authentication lives in an
// external collaborator; the service only compares candidate IDs.
type Candidate struct {
	gorm.Model
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"unique;not null" json:"email"`
}
