package db

import (
	"buybox/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.TrackedProduct{},
		&models.PricePoint{},
		&models.SearchRecord{},
		&models.Decision{},
		&models.ChatMessage{},
	)
}
