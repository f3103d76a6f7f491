package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/pkg/utils"
)

// Memory is a mutex-guarded in-process store seeded with the default catalog.
// It has the same observable behaviour as Gorm, including atomic challenge consumption.
type Memory struct {
	mu sync.Mutex

	seq        map[string]uint
	challenges []models.OTP
	users      map[uint]*models.User
	movements  map[uint]*models.Movement
	wods       map[uint]*models.WOD
	prs        map[uint]*models.PRRecord
	results    map[uint]*models.WODResult

	now func() time.Time
}

func NewMemory() *Memory {
	m := &Memory{
		seq:       make(map[string]uint),
		users:     make(map[uint]*models.User),
		movements: make(map[uint]*models.Movement),
		wods:      make(map[uint]*models.WOD),
		prs:       make(map[uint]*models.PRRecord),
		results:   make(map[uint]*models.WODResult),
		now:       time.Now,
	}
	for _, mv := range models.DefaultMovements() {
		mv := mv
		m.insertMovement(&mv)
	}
	for _, w := range models.DefaultWODs() {
		w := w
		m.insertWOD(&w)
	}
	return m
}

func (m *Memory) Ping(context.Context) error { return nil }

// id returns the next value of a per-table sequence.
func (m *Memory) id(table string) uint {
	m.seq[table]++
	return m.seq[table]
}

func (m *Memory) stamp() time.Time {
	return m.now().UTC()
}

func (m *Memory) CreateChallenge(_ context.Context, otp *models.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	otp.ID = m.id("otp_codes")
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = m.stamp()
	}
	m.challenges = append(m.challenges, *otp)
	return nil
}

func (m *Memory) CountChallengesSince(_ context.Context, contact models.Contact, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.challenges {
		if contact.Matches(c.Email, c.Phone) && c.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) ConsumeChallenge(_ context.Context, contact models.Contact, code string, now time.Time) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	best := -1
	for i, c := range m.challenges {
		if !contact.Matches(c.Email, c.Phone) || !c.IsValid(now) || !utils.OTPEqual(code, c.CodeHash) {
			continue
		}
		if best < 0 || c.CreatedAt.After(m.challenges[best].CreatedAt) ||
			(c.CreatedAt.Equal(m.challenges[best].CreatedAt) && c.ID > m.challenges[best].ID) {
			best = i
		}
	}
	if best < 0 {
		return nil, nil
	}
	m.challenges[best].Used = true
	out := m.challenges[best]
	return &out, nil
}

func (m *Memory) DeleteExpiredChallenges(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.challenges[:0]
	var n int64
	for _, c := range m.challenges {
		if c.ExpiresAt.Before(now) {
			n++
			continue
		}
		kept = append(kept, c)
	}
	m.challenges = kept
	return n, nil
}

func (m *Memory) FindUserByContact(_ context.Context, contact models.Contact) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.User
	for _, u := range m.users {
		if contact.Matches(u.Email, u.Phone) && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, nil
	}
	out := *found
	return &out, nil
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if sameNonNil(u.Email, user.Email) || sameNonNil(u.Phone, user.Phone) {
			return ErrConflict
		}
	}
	user.ID = m.id("users")
	user.CreatedAt = m.stamp()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func sameNonNil(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func (m *Memory) TouchLastLogin(_ context.Context, userID uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = at
	return nil
}

func (m *Memory) GetUser(_ context.Context, userID uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// DeleteUser removes an account. Tokens issued to it stop validating.
func (m *Memory) DeleteUser(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

func (m *Memory) UpdateProfile(_ context.Context, userID uint, p models.ProfileUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = p.Name
	u.UnitSystem = p.UnitSystem
	u.Timezone = p.Timezone
	u.BirthDate = p.BirthDate
	u.Gender = p.Gender
	u.UpdatedAt = m.stamp()
	out := *u
	return &out, nil
}

func newestFirst(ad, bd, ac, bc time.Time, aid, bid uint) bool {
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	if !ac.Equal(bc) {
		return ac.After(bc)
	}
	return aid > bid
}

func (m *Memory) ListPRRecords(_ context.Context, f RecordFilter) ([]models.PRRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.PRRecord, 0)
	for _, r := range m.prs {
		if r.UserID != f.UserID || (f.ParentID != nil && r.MovementID != *f.ParentID) {
			continue
		}
		rec := *r
		if mv, ok := m.movements[rec.MovementID]; ok {
			cp := *mv
			rec.Movement = &cp
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[j].Date, out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *Memory) GetPRRecord(_ context.Context, userID, id uint) (*models.PRRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.prs[id]
	if !ok || r.UserID != userID {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

func (m *Memory) CreatePRRecord(_ context.Context, record *models.PRRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = m.id("pr_records")
	record.CreatedAt = m.stamp()
	record.UpdatedAt = record.CreatedAt
	stored := *record
	stored.Movement = nil
	m.prs[record.ID] = &stored
	return nil
}

func (m *Memory) UpdatePRRecord(_ context.Context, record *models.PRRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.prs[record.ID]
	if !ok || cur.UserID != record.UserID {
		return ErrNotFound
	}
	cur.Date = record.Date
	cur.RepScheme = record.RepScheme
	cur.Weight = record.Weight
	cur.Reps = record.Reps
	cur.Est1RM = record.Est1RM
	cur.Note = record.Note
	cur.MediaLink = record.MediaLink
	cur.Unit = record.Unit
	cur.IsPR = record.IsPR
	cur.UpdatedAt = m.stamp()
	return nil
}

func (m *Memory) DeletePRRecord(_ context.Context, userID, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.prs[id]
	if !ok || r.UserID != userID {
		return ErrNotFound
	}
	delete(m.prs, id)
	return nil
}

func (m *Memory) ListWODResults(_ context.Context, f RecordFilter) ([]models.WODResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WODResult, 0)
	for _, r := range m.results {
		if r.UserID != f.UserID || (f.ParentID != nil && r.WODID != *f.ParentID) {
			continue
		}
		res := *r
		if w, ok := m.wods[res.WODID]; ok {
			cp := *w
			res.WOD = &cp
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[j].Date, out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (m *Memory) GetWODResult(_ context.Context, userID, id uint) (*models.WODResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[id]
	if !ok || r.UserID != userID {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

func (m *Memory) CreateWODResult(_ context.Context, result *models.WODResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	result.ID = m.id("wod_results")
	result.CreatedAt = m.stamp()
	result.UpdatedAt = result.CreatedAt
	stored := *result
	stored.WOD = nil
	m.results[result.ID] = &stored
	return nil
}

func (m *Memory) UpdateWODResult(_ context.Context, result *models.WODResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.results[result.ID]
	if !ok || cur.UserID != result.UserID {
		return ErrNotFound
	}
	cur.Date = result.Date
	cur.TimeSec = result.TimeSec
	cur.Rounds = result.Rounds
	cur.ExtraReps = result.ExtraReps
	cur.LoadsUsed = result.LoadsUsed
	cur.RxScaled = result.RxScaled
	cur.Note = result.Note
	cur.MediaLink = result.MediaLink
	cur.UpdatedAt = m.stamp()
	return nil
}

func (m *Memory) DeleteWODResult(_ context.Context, userID, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[id]
	if !ok || r.UserID != userID {
		return ErrNotFound
	}
	delete(m.results, id)
	return nil
}

func (m *Memory) insertMovement(mv *models.Movement) {
	mv.ID = m.id("movements")
	mv.CreatedAt = m.stamp()
	mv.UpdatedAt = mv.CreatedAt
	stored := *mv
	m.movements[mv.ID] = &stored
}

func (m *Memory) insertWOD(w *models.WOD) {
	w.ID = m.id("wods")
	w.CreatedAt = m.stamp()
	w.UpdatedAt = w.CreatedAt
	stored := *w
	m.wods[w.ID] = &stored
}

func (m *Memory) visibleMovements(userID uint, match func(string) bool) []models.Movement {
	out := make([]models.Movement, 0)
	for _, mv := range m.movements {
		if mv.VisibleTo(userID) && match(mv.Name) {
			out = append(out, *mv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *Memory) visibleWODs(userID uint, match func(string) bool) []models.WOD {
	out := make([]models.WOD, 0)
	for _, w := range m.wods {
		if w.VisibleTo(userID) && match(w.Name) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func matchAll(string) bool { return true }

func contains(q string) func(string) bool {
	needle := strings.Trim(likePattern(q), "%")
	return func(name string) bool {
		return strings.Contains(strings.ToLower(name), needle)
	}
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func (m *Memory) ListMovements(_ context.Context, userID uint) ([]models.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visibleMovements(userID, matchAll), nil
}

func (m *Memory) GetMovement(_ context.Context, userID, id uint) (*models.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.movements[id]
	if !ok || !mv.VisibleTo(userID) {
		return nil, ErrNotFound
	}
	out := *mv
	return &out, nil
}

func (m *Memory) CreateMovement(_ context.Context, mv *models.Movement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertMovement(mv)
	return nil
}

func (m *Memory) SearchMovements(_ context.Context, userID uint, q string) ([]models.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return limit(m.visibleMovements(userID, contains(q)), SearchLimit), nil
}

func (m *Memory) ListWODs(_ context.Context, userID uint) ([]models.WOD, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visibleWODs(userID, matchAll), nil
}

func (m *Memory) GetWOD(_ context.Context, userID, id uint) (*models.WOD, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wods[id]
	if !ok || !w.VisibleTo(userID) {
		return nil, ErrNotFound
	}
	out := *w
	return &out, nil
}

func (m *Memory) CreateWOD(_ context.Context, w *models.WOD) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertWOD(w)
	return nil
}

func (m *Memory) SearchWODs(_ context.Context, userID uint, q string) ([]models.WOD, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return limit(m.visibleWODs(userID, contains(q)), SearchLimit), nil
}
