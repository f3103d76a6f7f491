package models

import (
	"time"
)

// PRRecord is one logged lift. Est1RM is derived from Weight, Reps and RepScheme on every write.
type PRRecord struct {
	Record
	UserID     uint       `json:"user_id" gorm:"not null;index:idx_pr_user_movement,priority:1"`
	MovementID uint       `json:"movement_id" gorm:"not null;index:idx_pr_user_movement,priority:2"`
	Movement   *Movement  `json:"movement,omitempty" gorm:"foreignKey:MovementID"`
	Date       time.Time  `json:"date" gorm:"type:date;not null"`
	RepScheme  string     `json:"rep_scheme" gorm:"not null"`
	Weight     *float64   `json:"weight"`
	Reps       *int       `json:"reps"`
	Est1RM     *float64   `json:"est_1rm" gorm:"column:est_1rm"`
	Note       *string    `json:"note"`
	MediaLink  *string    `json:"media_link"`
	Unit       UnitSystem `json:"unit" gorm:"not null"`
	IsPR       bool       `json:"is_pr" gorm:"default:false"`
}

func (PRRecord) TableName() string {
	return "pr_records"
}
