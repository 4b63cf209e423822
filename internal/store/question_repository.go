package store

import (
	"errors"

	"gorm.io/gorm"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/models"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func (r *QuestionRepository) CreateQuestion(question *models.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) GetQuestion(questionID uint) (*models.Question, error) {
	var question models.Question
	err := r.DB.First(&question, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FirstQuestionByTitle returns the existing question with the given
// title, or nil when none exists. Titles are unique system-wide.
func (r *QuestionRepository) FirstQuestionByTitle(title string) (*models.Question, error) {
	var question models.Question
	err := r.DB.First(&question, "title = ?", title).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// RecentQuestionTitles returns the titles of the k most recently created
// questions for a round, newest first. Used as the generator's exclusion
// list.
func (r *QuestionRepository) RecentQuestionTitles(roundID uint, k int) ([]string, error) {
	var titles []string
	err := r.DB.Model(&models.Question{}).
		Where("round_id = ?", roundID).
		Order("created_at DESC").
		Limit(k).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// UpdateQuestionRound re-points a question at a round.
func (r *QuestionRepository) UpdateQuestionRound(question *models.Question, roundID uint) error {
	question.RoundID = roundID
	return r.DB.Model(question).Update("round_id", roundID).Error
}
