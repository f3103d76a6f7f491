package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func contactScope(c models.Contact) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case c.Email != "" && c.Phone != "":
			return db.Where("(email = ? OR phone = ?)", c.Email, c.Phone)
		case c.Email != "":
			return db.Where("email = ?", c.Email)
		default:
			return db.Where("phone = ?", c.Phone)
		}
	}
}

func (s *Gorm) CreateChallenge(ctx context.Context, otp *models.OTP) error {
	if err := s.conn(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("create challenge: %w", err)
	}
	return nil
}

// CountChallengesSince counts challenges for contact created strictly after since.
func (s *Gorm) CountChallengesSince(ctx context.Context, contact models.Contact, since time.Time) (int, error) {
	var n int64
	err := s.conn(ctx).Model(&models.OTP{}).
		Scopes(contactScope(contact)).
		Where("created_at > ?", since).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count challenges: %w", err)
	}
	return int(n), nil
}

// ConsumeChallenge marks the newest live challenge matching contact and code as used.
// It returns (nil, nil) when no such challenge exists. The row is locked and the
// update is conditional on used = false, so concurrent verifications cannot both win.
func (s *Gorm) ConsumeChallenge(ctx context.Context, contact models.Contact, code string, now time.Time) (*models.OTP, error) {
	var consumed *models.OTP
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var otp models.OTP
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(contactScope(contact)).
			Where("code_hash = ? AND used = ? AND expires_at > ?", utils.HashOTP(code), false, now).
			Order("created_at DESC").
			First(&otp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.OTP{}).
			Where("id = ? AND used = ?", otp.ID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		otp.Used = true
		consumed = &otp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("consume challenge: %w", err)
	}
	return consumed, nil
}

// DeleteExpiredChallenges removes challenges whose expiry is before now, used or not.
func (s *Gorm) DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error) {
	res := s.conn(ctx).Where("expires_at < ?", now).Delete(&models.OTP{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired challenges: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// FindUserByContact returns (nil, nil) when no account matches.
func (s *Gorm) FindUserByContact(ctx context.Context, contact models.Contact) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).Scopes(contactScope(contact)).Order("id").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.conn(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (s *Gorm) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", userID).Update("last_login", at)
	if res.Error != nil {
		return fmt.Errorf("touch last login: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUser returns (nil, nil) when the account does not exist.
func (s *Gorm) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *Gorm) UpdateProfile(ctx context.Context, userID uint, p models.ProfileUpdate) (*models.User, error) {
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"name":        p.Name,
		"unit_system": p.UnitSystem,
		"timezone":    p.Timezone,
		"birth_date":  p.BirthDate,
		"gender":      p.Gender,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
