package handlers

import (
	"context"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/auth"
	"github.com/chachabrian/wodlog-backend/internal/middleware"
	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/services"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store is everything the HTTP layer reads and writes.
type Store interface {
	Ping(ctx context.Context) error

	GetUser(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, p models.ProfileUpdate) (*models.User, error)

	ListMovements(ctx context.Context, userID uint) ([]models.Movement, error)
	GetMovement(ctx context.Context, userID, id uint) (*models.Movement, error)
	CreateMovement(ctx context.Context, m *models.Movement) error
	SearchMovements(ctx context.Context, userID uint, q string) ([]models.Movement, error)

	ListWODs(ctx context.Context, userID uint) ([]models.WOD, error)
	GetWOD(ctx context.Context, userID, id uint) (*models.WOD, error)
	CreateWOD(ctx context.Context, w *models.WOD) error
	SearchWODs(ctx context.Context, userID uint, q string) ([]models.WOD, error)

	ListPRRecords(ctx context.Context, f store.RecordFilter) ([]models.PRRecord, error)
	GetPRRecord(ctx context.Context, userID, id uint) (*models.PRRecord, error)
	CreatePRRecord(ctx context.Context, r *models.PRRecord) error
	UpdatePRRecord(ctx context.Context, r *models.PRRecord) error
	DeletePRRecord(ctx context.Context, userID, id uint) error

	ListWODResults(ctx context.Context, f store.RecordFilter) ([]models.WODResult, error)
	GetWODResult(ctx context.Context, userID, id uint) (*models.WODResult, error)
	CreateWODResult(ctx context.Context, r *models.WODResult) error
	UpdateWODResult(ctx context.Context, r *models.WODResult) error
	DeleteWODResult(ctx context.Context, userID, id uint) error
}

// EventPublisher pushes record changes to a user's open sessions.
type EventPublisher interface {
	SendToUser(userID uint, eventType string, data interface{})
}

type MediaSaver interface {
	Save(ctx context.Context, file *multipart.FileHeader, userID uint) (string, error)
}

// Deps is shared by every handler.
type Deps struct {
	Store  Store
	Auth   *auth.Authenticator
	Cache  services.StatsCache
	Events EventPublisher
	Media  MediaSaver
	Hub    *services.Hub
	Logger *zap.Logger
	Now    func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

func (d *Deps) publish(userID uint, eventType string, data interface{}) {
	if d.Events != nil {
		d.Events.SendToUser(userID, eventType, data)
	}
}

func (d *Deps) invalidate(ctx context.Context, keys ...string) {
	if err := d.Cache.Invalidate(ctx, keys...); err != nil {
		d.Logger.Warn("stats cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func currentUser(c *gin.Context) uint {
	return c.GetUint(middleware.UserIDKey)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func optionalID(raw string) (*uint, bool) {
	if raw == "" {
		return nil, true
	}
	id, ok := parseID(raw)
	if !ok {
		return nil, false
	}
	return &id, true
}

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns the date at UTC midnight.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
