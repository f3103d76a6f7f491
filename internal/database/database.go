package database

import (
	"fmt"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the Postgres pool, migrates the schema and seeds the catalog.
func InitDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := SeedCatalog(db); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	log.Info("database ready", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))
	return db, nil
}
