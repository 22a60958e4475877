package database

import (
	"github.com/dmcampos/frota-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.Truck{},
		&models.Prancha{},
		&models.Trip{},
		&models.Document{},
	)
	if err != nil {
		return err
	}

	// Update users table
	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('admin', 'operator'))`)
	}

	// Document type constraint
	if db.Migrator().HasTable(&models.Document{}) {
		db.Exec(`ALTER TABLE documents DROP CONSTRAINT IF EXISTS documents_type_check`)
		db.Exec(`ALTER TABLE documents ADD CONSTRAINT documents_type_check CHECK (type IN ('documento', 'tacografo_certificado', 'seguro', 'inspecao'))`)
	}

	// Older deployments stored expiry_date without a source column
	if db.Migrator().HasTable(&models.Document{}) {
		if err := db.Exec(`ALTER TABLE documents ADD COLUMN IF NOT EXISTS expiry_source text DEFAULT ''`).Error; err != nil {
			return err
		}
	}

	return nil
}
