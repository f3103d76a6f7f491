package models

import (
	"time"
)

// WODFormat is how a workout is scored.
type WODFormat string

const (
	FormatForTime WODFormat = "For Time"
	FormatAMRAP   WODFormat = "AMRAP"
	FormatEMOM    WODFormat = "EMOM"
)

const (
	RxPrescribed = "Rx"
	RxScaled     = "Scaled"
)

type WOD struct {
	Record
	UserID          *uint     `json:"user_id" gorm:"index"`
	Name            string    `json:"name" gorm:"not null"`
	Format          WODFormat `json:"format" gorm:"not null"`
	Description     string    `json:"description" gorm:"not null"`
	PrescribedLoads *string   `json:"prescribed_loads"`
	Tags            *string   `json:"tags"`
	IsCustom        bool      `json:"is_custom" gorm:"default:false"`
}

func (WOD) TableName() string {
	return "wods"
}

// VisibleTo reports whether userID can see the workout.
func (w *WOD) VisibleTo(userID uint) bool {
	return !w.IsCustom || (w.UserID != nil && *w.UserID == userID)
}

// WODResult is one attempt at a WOD. TimeSec is set for For Time, Rounds/ExtraReps for AMRAP.
type WODResult struct {
	Record
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_wod_result_user_wod,priority:1"`
	WODID     uint      `json:"wod_id" gorm:"column:wod_id;not null;index:idx_wod_result_user_wod,priority:2"`
	WOD       *WOD      `json:"wod,omitempty" gorm:"foreignKey:WODID"`
	Date      time.Time `json:"date" gorm:"type:date;not null"`
	Format    WODFormat `json:"format" gorm:"not null"`
	TimeSec   *int      `json:"time_sec"`
	Rounds    *int      `json:"rounds"`
	ExtraReps *int      `json:"extra_reps"`
	LoadsUsed *string   `json:"loads_used"`
	RxScaled  string    `json:"rx_scaled" gorm:"not null;default:Rx"`
	Note      *string   `json:"note"`
	MediaLink *string   `json:"media_link"`
}

func (WODResult) TableName() string {
	return "wod_results"
}
