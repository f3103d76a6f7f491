package auth

import (
	"context"
	"testing"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/models"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_RemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	contact := models.Contact{Email: "a@x.io"}

	for _, age := range []time.Duration{2 * time.Hour, time.Hour, time.Minute} {
		created := clock.Now().Add(-age)
		require.NoError(t, s.CreateChallenge(ctx, &models.OTP{
			Email:     contact.EmailPtr(),
			CodeHash:  "h",
			CreatedAt: created,
			ExpiresAt: created.Add(10 * time.Minute),
		}))
	}

	n, err := NewSweeper(s, clock, time.Hour, nil).Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := s.CountChallengesSince(ctx, contact, clock.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, left)
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSweeper(store.NewMemory(), nil, time.Millisecond, nil).Run(ctx)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
