// Package cache stores computed trust scores keyed by deal, observation
// date and age band. Trust only changes when a deal crosses an age band,
// and band cutoffs are measured from posting time, so the band is part of
// the key alongside the UTC day.
package cache

import (
	"context"
	"strconv"
	"time"
)

// TrustCache reads and writes cached trust scores.
type TrustCache interface {
	Get(ctx context.Context, key string) (score float64, ok bool, err error)
	Set(ctx context.Context, key string, score float64) error
}

// Key returns the cache key for dealID observed at t while in age band.
func Key(dealID string, t time.Time, band int) string {
	return "trust:" + dealID + ":" + t.UTC().Format(time.DateOnly) + ":" + strconv.Itoa(band)
}

// Noop never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string) (float64, bool, error) { return 0, false, nil }

// Set discards the score.
func (Noop) Set(context.Context, string, float64) error { return nil }
