package repository

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Membership{},
		&model.JoinRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
