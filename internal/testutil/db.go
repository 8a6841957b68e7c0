package testutil

import (
	"fmt"
	"strings"
	"testing"

	"talently/internal/database"
	"talently/internal/repository"

	"gorm.io/gorm"
)

// NewSQLite opens a migrated in-memory database private to t.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, false)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
