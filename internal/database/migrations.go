package database

import (
	"github.com/chachabrian/wodlog-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.Movement{},
		&models.PRRecord{},
		&models.WOD{},
		&models.WODResult{},
	)
	if err != nil {
		return err
	}

	// Constraints AutoMigrate cannot express
	constraints := []struct{ table, name, check string }{
		{"users", "users_contact_check", "email IS NOT NULL OR phone IS NOT NULL"},
		{"users", "users_unit_system_check", "unit_system IN ('kg', 'lb')"},
		{"pr_records", "pr_records_unit_check", "unit IN ('kg', 'lb')"},
		{"wod_results", "wod_results_rx_scaled_check", "rx_scaled IN ('Rx', 'Scaled')"},
		{"otp_codes", "otp_codes_contact_check", "email IS NOT NULL OR phone IS NOT NULL"},
	}
	for _, c := range constraints {
		if err := db.Exec(`ALTER TABLE ` + c.table + ` DROP CONSTRAINT IF EXISTS ` + c.name).Error; err != nil {
			return err
		}
		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.name + ` CHECK (` + c.check + `)`).Error; err != nil {
			return err
		}
	}

	// Catalog names are searched case-insensitively
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_movements_lower_name ON movements (LOWER(name))`,
		`CREATE INDEX IF NOT EXISTS idx_wods_lower_name ON wods (LOWER(name))`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
