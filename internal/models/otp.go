package models

import (
	"time"
)

// OTP is a one-time login code challenge. Only a digest of the code is stored.
type OTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     *string   `json:"email" gorm:"index:idx_otp_email_created,priority:1"`
	Phone     *string   `json:"phone" gorm:"index:idx_otp_phone_created,priority:1"`
	CodeHash  string    `json:"-" gorm:"column:code_hash;not null;index:idx_otp_lookup,priority:1"`
	Used      bool      `json:"used" gorm:"default:false;index:idx_otp_lookup,priority:2"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index:idx_otp_lookup,priority:3"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_otp_email_created,priority:2;index:idx_otp_phone_created,priority:2"`
}

// TableName specifies the table name
func (OTP) TableName() string {
	return "otp_codes"
}

// IsValid checks if the OTP is still usable at now (not expired and not used)
func (o *OTP) IsValid(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}
