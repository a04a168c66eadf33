// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a migrated SQLite database with foreign keys enforced. It is
// closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:fyyur_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq.Add(1))
	db, err := database.Open(sqlite.Open(dsn), zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// one connection, so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
