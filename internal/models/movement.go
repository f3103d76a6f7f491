package models

// Movement is a lift or skill PRs are recorded against. Catalog movements have no owner.
type Movement struct {
	Record
	UserID   *uint   `json:"user_id" gorm:"index"`
	Name     string  `json:"name" gorm:"not null"`
	Category string  `json:"category" gorm:"not null;default:Other"`
	IsCustom bool    `json:"is_custom" gorm:"default:false"`
	Notes    *string `json:"notes"`
}

// VisibleTo reports whether userID can see the movement.
func (m *Movement) VisibleTo(userID uint) bool {
	return !m.IsCustom || (m.UserID != nil && *m.UserID == userID)
}
