package store

import (
	"errors"

	"gorm.io/gorm"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/models"
)

// CatalogRepository covers the records the orchestration core only reads
// or seeds: roles, rounds and candidates. Their admin surfaces live in an
// external collaborator.
type CatalogRepository struct {
	DB *gorm.DB
}

func (r *CatalogRepository) CreateRole(role *models.Role) error {
	return r.DB.Create(role).Error
}

func (r *CatalogRepository) CreateRound(round *models.Round) error {
	return r.DB.Create(round).Error
}

func (r *CatalogRepository) CreateCandidate(candidate *models.Candidate) error {
	return r.DB.Create(candidate).Error
}

func (r *CatalogRepository) GetRound(roundID uint) (*models.Round, error) {
	var round models.Round
	err := r.DB.First(&round, roundID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *CatalogRepository) GetCandidate(candidateID uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.DB.First(&candidate, candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}
