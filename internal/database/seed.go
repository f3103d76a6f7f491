package database

import (
	"github.com/chachabrian/wodlog-backend/internal/models"
	"gorm.io/gorm"
)

// SeedCatalog inserts the default movements and WODs that are not present yet.
// Running it again is a no-op.
func SeedCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range models.DefaultMovements() {
			m := m
			err := tx.Where("name = ? AND is_custom = ?", m.Name, false).
				Attrs(models.Movement{Category: m.Category}).
				FirstOrCreate(&m).Error
			if err != nil {
				return err
			}
		}
		for _, w := range models.DefaultWODs() {
			w := w
			err := tx.Where("name = ? AND is_custom = ?", w.Name, false).
				Attrs(models.WOD{Format: w.Format, Description: w.Description, PrescribedLoads: w.PrescribedLoads, Tags: w.Tags}).
				FirstOrCreate(&w).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
