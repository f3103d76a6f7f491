package store

import (
	"context"
	"fmt"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"gorm.io/gorm"
)

func visibleTo(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(is_custom = ? OR user_id = ?)", false, userID)
	}
}

// ListMovements returns the catalog plus userID's custom movements, by name.
func (s *Gorm) ListMovements(ctx context.Context, userID uint) ([]models.Movement, error) {
	var out []models.Movement
	if err := s.conn(ctx).Scopes(visibleTo(userID)).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return out, nil
}

func (s *Gorm) GetMovement(ctx context.Context, userID, id uint) (*models.Movement, error) {
	var m models.Movement
	if err := s.conn(ctx).Scopes(visibleTo(userID)).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *Gorm) CreateMovement(ctx context.Context, m *models.Movement) error {
	if err := s.conn(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

func (s *Gorm) SearchMovements(ctx context.Context, userID uint, q string) ([]models.Movement, error) {
	var out []models.Movement
	err := s.conn(ctx).Scopes(visibleTo(userID)).
		Where("LOWER(name) LIKE ?", likePattern(q)).
		Order("name").Limit(SearchLimit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("search movements: %w", err)
	}
	return out, nil
}

func (s *Gorm) ListWODs(ctx context.Context, userID uint) ([]models.WOD, error) {
	var out []models.WOD
	if err := s.conn(ctx).Scopes(visibleTo(userID)).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list wods: %w", err)
	}
	return out, nil
}

func (s *Gorm) GetWOD(ctx context.Context, userID, id uint) (*models.WOD, error) {
	var w models.WOD
	if err := s.conn(ctx).Scopes(visibleTo(userID)).First(&w, id).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (s *Gorm) CreateWOD(ctx context.Context, w *models.WOD) error {
	if err := s.conn(ctx).Create(w).Error; err != nil {
		return fmt.Errorf("create wod: %w", err)
	}
	return nil
}

func (s *Gorm) SearchWODs(ctx context.Context, userID uint, q string) ([]models.WOD, error) {
	var out []models.WOD
	err := s.conn(ctx).Scopes(visibleTo(userID)).
		Where("LOWER(name) LIKE ?", likePattern(q)).
		Order("name").Limit(SearchLimit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("search wods: %w", err)
	}
	return out, nil
}
