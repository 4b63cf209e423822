package testhelpers

import (
	"fmt"
	"testing"

	"vode/interview/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	openSQLite = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	}
	migrateSchema = store.Migrate
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return db
}
