package repositories

import (
	"github.com/anonto42/yatube/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
