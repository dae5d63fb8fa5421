// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"io"
	"path/filepath"
	"testing"

	"gameverse/backend/internal/database"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated SQLite database living in the test's temp dir.
// Foreign keys are switched on so ON DELETE rules behave as they do on postgres.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	dsn := filepath.Join(t.TempDir(), "gameverse.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig(log))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
