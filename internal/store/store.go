// Package store persists login challenges, accounts, the movement and WOD catalog,
// and the records users log against it. Gorm backs production; Memory backs tests
// and DB_DRIVER=memory.
package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist or is not visible to the caller.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique email or phone is already taken.
	ErrConflict = errors.New("record already exists")
)

// SearchLimit caps catalog search results per kind.
const SearchLimit = 10

// RecordFilter narrows record listings to a single movement or WOD.
type RecordFilter struct {
	UserID   uint
	ParentID *uint
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}
