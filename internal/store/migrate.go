package store

import (
	"gorm.io/gorm"

	"vode/interview/internal/models"
)

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.Round{},
		&models.Question{},
		&models.Candidate{},
		&models.Interview{},
	)
}
