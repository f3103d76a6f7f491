package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingSender struct {
	mu    sync.Mutex
	sent  []string
	fails bool
}

func (s *recordingSender) SendCode(_ context.Context, _ models.Contact, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, code)
	if s.fails {
		return errors.New("smtp down")
	}
	return nil
}

func fixedCodes(codes ...string) CodeGenerator {
	i := 0
	return CodeGeneratorFunc(func() (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	})
}

type harness struct {
	auth   *Authenticator
	store  *store.Memory
	clock  *fakeClock
	sender *recordingSender
}

func newHarness(t *testing.T, opts Options, codes ...string) *harness {
	t.Helper()
	if len(codes) == 0 {
		codes = []string{"123456"}
	}
	h := &harness{
		store:  store.NewMemory(),
		clock:  &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		sender: &recordingSender{},
	}
	tokens := NewTokenIssuer("test-secret", "wodlog", 30*24*time.Hour)
	tokens.now = h.clock.Now
	h.auth = NewAuthenticator(Deps{
		Challenges: h.store,
		Accounts:   h.store,
		Sender:     h.sender,
		Tokens:     tokens,
		Clock:      h.clock,
		Codes:      fixedCodes(codes...),
	}, opts)
	return h
}

func TestRequestChallenge(t *testing.T) {
	ctx := context.Background()

	t.Run("empty contact", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.RequestChallenge(ctx, models.Contact{Email: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("email and phone together", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.RequestChallenge(ctx, models.Contact{Email: "a@x.io", Phone: "+254700000000"})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, h.sender.sent)
	})

	t.Run("accepted and delivered", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		res, err := h.auth.RequestChallenge(ctx, models.Contact{Email: " Lifter@Example.COM "})
		require.NoError(t, err)
		assert.True(t, res.Accepted)
		assert.Equal(t, h.clock.Now().Add(10*time.Minute), res.ExpiresAt)
		assert.Empty(t, res.DevCode)
		assert.Equal(t, []string{"123456"}, h.sender.sent)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		h.sender.fails = true
		res, err := h.auth.RequestChallenge(ctx, models.Contact{Phone: "+254700000000"})
		require.NoError(t, err)
		assert.True(t, res.Accepted)
	})

	t.Run("echo in development", func(t *testing.T) {
		opts := DefaultOptions()
		opts.EchoCode = true
		h := newHarness(t, opts, "654321")
		res, err := h.auth.RequestChallenge(ctx, models.Contact{Email: "a@x.io"})
		require.NoError(t, err)
		assert.Equal(t, "654321", res.DevCode)
	})
}

func TestRequestChallenge_RateLimit(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, DefaultOptions())
	contact := models.Contact{Email: "a@x.io"}

	for i := 0; i < 3; i++ {
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		h.clock.Advance(time.Second)
	}
	_, err := h.auth.RequestChallenge(ctx, contact)
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = h.auth.RequestChallenge(ctx, models.Contact{Email: "other@x.io"})
	assert.NoError(t, err, "limit is per contact")

	h.clock.Advance(5 * time.Minute)
	_, err = h.auth.RequestChallenge(ctx, contact)
	assert.NoError(t, err, "window slides")
}

func TestRequestChallenge_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, DefaultOptions())
	contact := models.Contact{Email: "a@x.io"}
	start := h.clock.Now()

	// Challenges at start, start+1m and start+2m.
	for i := 0; i < 3; i++ {
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		h.clock.Advance(time.Minute)
	}

	// At exactly start+5m the oldest sits on the window edge and no longer counts.
	h.clock.Advance(start.Add(5 * time.Minute).Sub(h.clock.Now()))
	_, err := h.auth.RequestChallenge(ctx, contact)
	require.NoError(t, err, "challenge at now-5m is outside the window")

	// Three challenges (start+1m, start+2m, start+5m) are now inside the window.
	h.clock.Advance(time.Second)
	_, err = h.auth.RequestChallenge(ctx, contact)
	assert.ErrorIs(t, err, ErrRateLimited)

	// Once start+1m leaves the window one more request fits.
	h.clock.Advance(start.Add(6*time.Minute + time.Second).Sub(h.clock.Now()))
	_, err = h.auth.RequestChallenge(ctx, contact)
	assert.NoError(t, err)
	_, err = h.auth.RequestChallenge(ctx, contact)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestVerifyChallenge(t *testing.T) {
	ctx := context.Background()
	contact := models.Contact{Email: "a@x.io"}

	t.Run("first login creates account", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)

		res, err := h.auth.VerifyChallenge(ctx, models.Contact{Email: "A@X.io"}, "123456")
		require.NoError(t, err)
		assert.True(t, res.NeedsOnboarding)
		assert.Equal(t, models.NewUserName, res.User.Name)
		assert.Equal(t, models.UnitKg, res.User.UnitSystem)
		assert.Equal(t, models.DefaultTimezone, res.User.Timezone)

		_, err = h.auth.VerifyChallenge(ctx, contact, "123456")
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode, "a code works once")
	})

	t.Run("returning user", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		first, err := h.auth.VerifyChallenge(ctx, contact, "123456")
		require.NoError(t, err)
		_, err = h.store.UpdateProfile(ctx, first.User.ID, models.ProfileUpdate{Name: "Sam", UnitSystem: models.UnitLb, Timezone: "UTC"})
		require.NoError(t, err)

		h.clock.Advance(time.Hour)
		_, err = h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		second, err := h.auth.VerifyChallenge(ctx, contact, "123456")
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)
		assert.False(t, second.NeedsOnboarding)
		assert.Equal(t, h.clock.Now(), second.User.LastLogin)
	})

	t.Run("expired", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		h.clock.Advance(10 * time.Minute)
		_, err = h.auth.VerifyChallenge(ctx, contact, "123456")
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	})

	t.Run("wrong code", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		_, err = h.auth.VerifyChallenge(ctx, contact, "000000")
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	})

	t.Run("older code still valid", func(t *testing.T) {
		h := newHarness(t, DefaultOptions(), "111111", "222222")
		_, err := h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		_, err = h.auth.RequestChallenge(ctx, contact)
		require.NoError(t, err)
		_, err = h.auth.VerifyChallenge(ctx, contact, "111111")
		assert.NoError(t, err)
	})

	t.Run("missing code", func(t *testing.T) {
		h := newHarness(t, DefaultOptions())
		_, err := h.auth.VerifyChallenge(ctx, contact, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestVerifyChallenge_ContactMustBeSingleChannel(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, DefaultOptions())
	owner := models.Contact{Phone: "+254700000001"}

	_, err := h.auth.RequestChallenge(ctx, owner)
	require.NoError(t, err)
	res, err := h.auth.VerifyChallenge(ctx, owner, "123456")
	require.NoError(t, err)
	ownerID := res.User.ID

	h.clock.Advance(time.Hour)
	mixed := models.Contact{Email: "someone@else.io", Phone: owner.Phone}
	_, err = h.auth.RequestChallenge(ctx, mixed)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// A live code for the other channel alone must not unlock the phone account either.
	_, err = h.auth.RequestChallenge(ctx, models.Contact{Email: mixed.Email})
	require.NoError(t, err)
	_, err = h.auth.VerifyChallenge(ctx, mixed, "123456")
	assert.ErrorIs(t, err, ErrInvalidInput)

	other, err := h.auth.VerifyChallenge(ctx, models.Contact{Email: mixed.Email}, "123456")
	require.NoError(t, err)
	assert.NotEqual(t, ownerID, other.User.ID)
	assert.Nil(t, other.User.Phone)
}

func TestVerifyChallenge_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, DefaultOptions())
	contact := models.Contact{Email: "a@x.io"}
	_, err := h.auth.RequestChallenge(ctx, contact)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, losses := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.auth.VerifyChallenge(ctx, contact, "123456")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, ErrInvalidOrExpiredCode) {
				losses++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
	assert.Equal(t, 9, losses)
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, DefaultOptions())
	contact := models.Contact{Email: "a@x.io"}
	_, err := h.auth.RequestChallenge(ctx, contact)
	require.NoError(t, err)
	res, err := h.auth.VerifyChallenge(ctx, contact, "123456")
	require.NoError(t, err)

	token, err := h.auth.IssueToken(res.User.ID)
	require.NoError(t, err)

	id, err := h.auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id)

	_, err = h.auth.ValidateToken(ctx, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = h.auth.ValidateToken(ctx, token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	h.store.DeleteUser(res.User.ID)
	_, err = h.auth.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
