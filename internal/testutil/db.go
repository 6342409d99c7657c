// Package testutil provides a migrated in-memory database and fakes for the
// storage and mail collaborators.
package testutil

import (
	"fmt"
	"testing"

	migration "foodgram/cmd/database/migrate"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and the full schema migrated. A single connection serialises concurrent
// callers the way row locks would.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CountQueries registers a callback counting SELECT statements issued on db.
func CountQueries(db *gorm.DB) *int {
	count := new(int)
	name := "testutil:count_" + uuid.NewString()
	_ = db.Callback().Query().After("gorm:query").Register(name, func(*gorm.DB) {
		*count++
	})
	_ = db.Callback().Row().After("gorm:row").Register(name, func(*gorm.DB) {
		*count++
	})
	return count
}
