package models

import (
	"time"

	"gorm.io/gorm"
)

// UnitSystem is the weight unit a user records in.
type UnitSystem string

const (
	UnitKg UnitSystem = "kg"
	UnitLb UnitSystem = "lb"
)

// Valid reports whether u is kg or lb.
func (u UnitSystem) Valid() bool {
	return u == UnitKg || u == UnitLb
}

const (
	// NewUserName marks an account created by a first login that has not been onboarded.
	NewUserName     = "New User"
	DefaultTimezone = "UTC"
)

type User struct {
	gorm.Model
	Email      *string    `gorm:"column:email;uniqueIndex"`
	Phone      *string    `gorm:"column:phone;uniqueIndex"`
	Name       string     `gorm:"column:name;not null"`
	UnitSystem UnitSystem `gorm:"column:unit_system;not null;default:kg"`
	Timezone   string     `gorm:"column:timezone;not null;default:UTC"`
	BirthDate  *time.Time `gorm:"column:birth_date;type:date"`
	Gender     *string    `gorm:"column:gender"`
	LastLogin  time.Time  `gorm:"column:last_login"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// NeedsOnboarding reports whether the user still carries the placeholder name.
func (u *User) NeedsOnboarding() bool {
	return u.Name == NewUserName
}

// NewUserFor builds the placeholder account for a first login from contact.
func NewUserFor(contact Contact, now time.Time) *User {
	return &User{
		Email:      contact.EmailPtr(),
		Phone:      contact.PhonePtr(),
		Name:       NewUserName,
		UnitSystem: UnitKg,
		Timezone:   DefaultTimezone,
		LastLogin:  now,
	}
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name       string
	UnitSystem UnitSystem
	Timezone   string
	BirthDate  *time.Time
	Gender     *string
}
