package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Gorm is the relational store. Every method is scoped by the caller's context.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Ping checks the underlying connection pool.
func (s *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Gorm) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
