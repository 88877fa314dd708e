package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/dealsense/internal/ingest"
	"github.com/donaldgifford/dealsense/internal/metrics"
	score "github.com/donaldgifford/dealsense/pkg/scorer"
	domain "github.com/donaldgifford/dealsense/pkg/types"
)

// IngestionResult summarizes one ingestion run.
type IngestionResult struct {
	Fetched    int `json:"fetched"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
	Alerts     int `json:"alerts"`
}

// RunIngestion fetches every source concurrently, stores new deals and
// raises alerts for profiles they match. A failing source or a rejected
// candidate is logged and skipped.
func (e *Engine) RunIngestion(ctx context.Context) (*IngestionResult, error) {
	if !e.ingestMu.TryLock() {
		return nil, ErrIngestionRunning
	}
	defer e.ingestMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.IngestionDuration.Observe(time.Since(start).Seconds())
	}()

	batches := e.fetchAll(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := e.nowFunc()
	res := &IngestionResult{}
	var fresh []domain.Deal

	for i, batch := range batches {
		name := e.sources[i].Name()
		metrics.IngestionCandidatesTotal.WithLabelValues(name).Add(float64(len(batch)))
		res.Fetched += len(batch)

		for j := range batch {
			c := &batch[j]
			if err := c.Validate(); err != nil {
				e.log.Warn("invalid candidate", "source", name, "title", c.Title, "error", err)
				metrics.IngestionInvalidTotal.Inc()
				res.Invalid++
				continue
			}

			d := ingest.ToDeal(c, ingest.DealID(c), now)
			inserted, err := e.store.InsertDeal(ctx, &d)
			if err != nil {
				e.log.Error("inserting deal failed", "source", name, "deal", d.ID, "error", err)
				metrics.IngestionErrorsTotal.Inc()
				continue
			}
			if !inserted {
				metrics.IngestionDuplicatesTotal.Inc()
				res.Duplicates++
				continue
			}

			metrics.IngestionInsertedTotal.Inc()
			res.Inserted++
			fresh = append(fresh, d)
		}
	}

	alerts, err := e.evaluateAlerts(ctx, fresh)
	if err != nil {
		e.log.Error("alert evaluation failed", "error", err)
	}
	res.Alerts = alerts

	if err := e.ProcessAlerts(ctx); err != nil {
		e.log.Error("alert processing failed", "error", err)
	}

	e.log.Info("ingestion complete",
		"fetched", res.Fetched,
		"inserted", res.Inserted,
		"duplicates", res.Duplicates,
		"invalid", res.Invalid,
		"alerts", res.Alerts,
		"duration", time.Since(start),
	)
	return res, nil
}

// fetchAll runs every source in parallel. The batch of a failing source
// holds whatever it returned before failing.
func (e *Engine) fetchAll(ctx context.Context) [][]ingest.Candidate {
	batches := make([][]ingest.Candidate, len(e.sources))

	var g errgroup.Group
	for i, src := range e.sources {
		g.Go(func() error {
			candidates, err := src.Fetch(ctx)
			if err != nil {
				metrics.SourceFetchErrorsTotal.WithLabelValues(src.Name()).Inc()
				e.log.Error("source fetch failed", "source", src.Name(), "error", err)
			}
			batches[i] = candidates
			return nil
		})
	}
	_ = g.Wait()

	return batches
}

// evaluateAlerts records an alert for every profile a new deal passes with a
// strong enough match.
func (e *Engine) evaluateAlerts(ctx context.Context, deals []domain.Deal) (int, error) {
	if len(deals) == 0 {
		return 0, nil
	}

	profiles, err := e.store.ListProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing profiles: %w", err)
	}

	var created int
	for i := range profiles {
		p := &profiles[i]
		for j := range deals {
			d := &deals[j]
			if !score.PassesFilters(*d, *p) {
				continue
			}
			match := score.Match(*d, *p)
			if match < e.alertThreshold {
				continue
			}
			a := &domain.Alert{ProfileID: p.ID, DealID: d.ID, MatchScore: match}
			if err := e.store.CreateAlert(ctx, a); err != nil {
				e.log.Error("creating alert failed", "profile", p.ID, "deal", d.ID, "error", err)
				continue
			}
			created++
		}
	}
	return created, nil
}
