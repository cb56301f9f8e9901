// Package testutil provides a shared database and fixtures for repo and
// service tests. Set TEST_POSTGRES_DSN to run against postgres; without it
// tests use an in-memory sqlite database.
package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/levelpath-backend/internal/db"
)

var (
	once   sync.Once
	shared *gorm.DB
	initDB error
)

// DB returns the shared migrated test database.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	once.Do(func() {
		cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn != "" {
			shared, initDB = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			shared, initDB = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
			if initDB == nil {
				sqlDB, err := shared.DB()
				if err != nil {
					initDB = err
					return
				}
				sqlDB.SetMaxOpenConns(1)
			}
		}
		if initDB != nil {
			return
		}
		initDB = db.AutoMigrateAll(shared)
	})
	if initDB != nil {
		t.Fatalf("init test database: %v", initDB)
	}
	return shared
}

// UsingPostgres reports whether the test database is postgres. Tests that
// depend on row locking skip on sqlite.
func UsingPostgres() bool {
	return os.Getenv("TEST_POSTGRES_DSN") != ""
}

// Tx runs the test body inside a transaction that always rolls back, so
// tests never see each other's rows.
func Tx(t *testing.T, fn func(tx *gorm.DB)) {
	t.Helper()
	database := DB(t)
	tx := database.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	defer tx.Rollback()
	fn(tx)
}
