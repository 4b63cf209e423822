package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/models"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func (r *InterviewRepository) CreateInterview(interview *models.Interview) error {
	return r.DB.Create(interview).Error
}

// GetInterview loads an interview with its round, role and question.
func (r *InterviewRepository) GetInterview(interviewID uint) (*models.Interview, error) {
	var interview models.Interview
	err := r.DB.Preload("Round").Preload("Question").First(&interview, interviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// GetRole loads the role a round belongs to.
func (r *InterviewRepository) GetRole(roleID uint) (*models.Role, error) {
	var role models.Role
	err := r.DB.First(&role, roleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// SaveInterview persists all current field values of the interview.
func (r *InterviewRepository) SaveInterview(interview *models.Interview) error {
	return r.DB.Save(interview).Error
}

// CompletedSince returns interviews completed at or after the given time,
// oldest first. Used by the results exporter.
func (r *InterviewRepository) CompletedSince(since time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.DB.Preload("Question").
		Where("completed_at IS NOT NULL AND completed_at >= ?", since).
		Order("completed_at ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}
