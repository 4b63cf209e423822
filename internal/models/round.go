package models

import (
	"strings"

	"gorm.io/gorm"
)

// Difficulty tiers, ordered easiest to hardest.
const (
	DifficultyVeryEasy = "very_easy"
	DifficultyEasy     = "easy"
	DifficultyMedium   = "medium"
	DifficultyHard     = "hard"
	DifficultyVeryHard = "very_hard"
)

var ValidDifficulties = map[string]bool{
	DifficultyVeryEasy: true,
	DifficultyEasy:     true,
	DifficultyMedium:   true,
	DifficultyHard:     true,
	DifficultyVeryHard: true,
}

// Round is one timed stage of a Role's interview process.
// RoundNumber is unique within its role.
type Round struct {
	gorm.Model
	RoleID           uint   `gorm:"not null;uniqueIndex:idx_role_round" json:"role_id"`
	RoundNumber      int    `gorm:"not null;uniqueIndex:idx_role_round" json:"round_number"`
	Name             string `json:"name"`
	Description      string `gorm:"type:text" json:"description"`
	Difficulty       string `gorm:"not null;default:easy" json:"difficulty"`
	Topics           string `gorm:"type:text" json:"topics"`
	SuccessMetrics   string `gorm:"type:text" json:"success_metrics"`
	TimeLimitMinutes int    `gorm:"not null;default:30" json:"time_limit_minutes"`
}

// TopicsList splits the comma-separated topic field into trimmed entries.
func (r *Round) TopicsList() []string {
	return splitCSV(r.Topics)
}

// SuccessMetricsList splits the comma-separated rubric headings.
func (r *Round) SuccessMetricsList() []string {
	return splitCSV(r.SuccessMetrics)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
