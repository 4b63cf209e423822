package models

import (
	"gorm.io/gorm"
)

// Role represents a job opening with a fixed number of interview rounds.
type Role struct {
	gorm.Model
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	NumRounds   int     `gorm:"not null;default:3" json:"num_rounds"`
	Rounds      []Round `json:"rounds,omitempty"`
}
