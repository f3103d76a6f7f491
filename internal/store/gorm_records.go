package store

import (
	"context"
	"fmt"

	"github.com/chachabrian/wodlog-backend/internal/models"
)

// ListPRRecords returns a user's lifts, newest first, optionally for one movement.
func (s *Gorm) ListPRRecords(ctx context.Context, f RecordFilter) ([]models.PRRecord, error) {
	q := s.conn(ctx).Preload("Movement").Where("user_id = ?", f.UserID)
	if f.ParentID != nil {
		q = q.Where("movement_id = ?", *f.ParentID)
	}
	var records []models.PRRecord
	if err := q.Order("date DESC, created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list pr records: %w", err)
	}
	return records, nil
}

func (s *Gorm) GetPRRecord(ctx context.Context, userID, id uint) (*models.PRRecord, error) {
	var record models.PRRecord
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&record, id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *Gorm) CreatePRRecord(ctx context.Context, record *models.PRRecord) error {
	if err := s.conn(ctx).Omit("Movement").Create(record).Error; err != nil {
		return fmt.Errorf("create pr record: %w", err)
	}
	return nil
}

// UpdatePRRecord overwrites the editable fields of an owned record.
func (s *Gorm) UpdatePRRecord(ctx context.Context, record *models.PRRecord) error {
	res := s.conn(ctx).Model(&models.PRRecord{}).
		Where("id = ? AND user_id = ?", record.ID, record.UserID).
		Updates(map[string]interface{}{
			"date":       record.Date,
			"rep_scheme": record.RepScheme,
			"weight":     record.Weight,
			"reps":       record.Reps,
			"est_1rm":    record.Est1RM,
			"note":       record.Note,
			"media_link": record.MediaLink,
			"unit":       record.Unit,
			"is_pr":      record.IsPR,
		})
	if res.Error != nil {
		return fmt.Errorf("update pr record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeletePRRecord(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.PRRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete pr record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWODResults returns a user's attempts, newest first, optionally for one WOD.
func (s *Gorm) ListWODResults(ctx context.Context, f RecordFilter) ([]models.WODResult, error) {
	q := s.conn(ctx).Preload("WOD").Where("user_id = ?", f.UserID)
	if f.ParentID != nil {
		q = q.Where("wod_id = ?", *f.ParentID)
	}
	var results []models.WODResult
	if err := q.Order("date DESC, created_at DESC, id DESC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list wod results: %w", err)
	}
	return results, nil
}

func (s *Gorm) GetWODResult(ctx context.Context, userID, id uint) (*models.WODResult, error) {
	var result models.WODResult
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&result, id).Error; err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

func (s *Gorm) CreateWODResult(ctx context.Context, result *models.WODResult) error {
	if err := s.conn(ctx).Omit("WOD").Create(result).Error; err != nil {
		return fmt.Errorf("create wod result: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateWODResult(ctx context.Context, result *models.WODResult) error {
	res := s.conn(ctx).Model(&models.WODResult{}).
		Where("id = ? AND user_id = ?", result.ID, result.UserID).
		Updates(map[string]interface{}{
			"date":       result.Date,
			"time_sec":   result.TimeSec,
			"rounds":     result.Rounds,
			"extra_reps": result.ExtraReps,
			"loads_used": result.LoadsUsed,
			"rx_scaled":  result.RxScaled,
			"note":       result.Note,
			"media_link": result.MediaLink,
		})
	if res.Error != nil {
		return fmt.Errorf("update wod result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteWODResult(ctx context.Context, userID, id uint) error {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.WODResult{})
	if res.Error != nil {
		return fmt.Errorf("delete wod result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
