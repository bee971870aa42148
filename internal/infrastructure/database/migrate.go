package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/theodez1/revly-sub001/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.Group{},
		&model.Membership{},
		&model.JoinRequest{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
