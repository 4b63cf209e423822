package models

import (
	"time"

	"gorm.io/gorm"
)

// Interview is one candidate sitting one round. The question reference is
// nil until the candidate first enters the interview page; StartedAt and
// CompletedAt are set exactly once each.
type Interview struct {
	gorm.Model
	CandidateID       uint       `gorm:"not null;index" json:"candidate_id"`
	RoundID           uint       `gorm:"not null;index" json:"round_id"`
	QuestionID        *uint      `json:"question_id"`
	Score             int        `gorm:"not null;default:0" json:"score"`
	Notes             string     `gorm:"type:text" json:"notes"`
	ScreenVideoURL    string     `json:"screen_video_url"`
	CandidateVideoURL string     `json:"candidate_video_url"`
	StartedAt         *time.Time `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at"`

	Round    Round     `json:"round,omitempty"`
	Question *Question `json:"question,omitempty"`
}

// Started reports whether the candidate has begun this interview.
func (i *Interview) Started() bool {
	return i.StartedAt != nil
}

// Completed reports whether the interview is finished and immutable to
// further coaching calls.
func (i *Interview) Completed() bool {
	return i.CompletedAt != nil
}
