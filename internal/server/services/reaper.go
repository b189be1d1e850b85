package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/logging"
)

type expiredTokenPurger interface {
	ReapExpiredTokens(ctx context.Context) (int64, error)
}

// TokenReaper periodically purges expired refresh tokens. Refresh rotation
// (Consume) never accepts an expired row, so this only keeps the table small.
type TokenReaper struct {
	purger   expiredTokenPurger
	interval time.Duration
	log      logging.Logger
}

func NewTokenReaper(p expiredTokenPurger, interval time.Duration, log logging.Logger) *TokenReaper {
	return &TokenReaper{purger: p, interval: interval, log: log}
}

// Run blocks until ctx is done. A non-positive interval disables purging.
func (r *TokenReaper) Run(ctx context.Context) error {
	if r.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *TokenReaper) runOnce(ctx context.Context) {
	n, err := r.purger.ReapExpiredTokens(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.log.Error(ctx, "purge expired refresh tokens", "error", err)
		}
		return
	}
	if n > 0 {
		r.log.Info(ctx, "purged expired refresh tokens", "count", n)
	}
}
