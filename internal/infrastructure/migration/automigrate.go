package migration

import (
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/logger"
)

// AutoMigrateModels returns every model the schema migration covers.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TicketModel{},
		&models.MessageModel{},
		&models.AttachmentModel{},
	}
}

// Run applies the schema migration with GORM AutoMigrate.
func Run(db *gorm.DB) error {
	models := AutoMigrateModels()

	logger.Info("starting database migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("database migration completed")
	return nil
}
