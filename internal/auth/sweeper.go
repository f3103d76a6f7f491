package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically deletes expired challenges, used or not.
type Sweeper struct {
	store    ChallengeStore
	clock    Clock
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(s ChallengeStore, clock Clock, interval time.Duration, log *zap.Logger) *Sweeper {
	if clock == nil {
		clock = SystemClock
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{store: s, clock: clock, interval: interval, log: log}
}

func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredChallenges(ctx, s.clock.Now())
}

// Run sweeps every interval until ctx is done. Failures are logged and the loop continues.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error("challenge sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Info("expired challenges removed", zap.Int64("count", n))
			}
		}
	}
}
