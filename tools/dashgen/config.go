package main

import "errors"

// KnownMetrics is the set of metric names exported by dealsense plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"dealsense_http_request_duration_seconds_bucket": true,
	"dealsense_http_requests_total":                  true,

	// Health metrics.
	"dealsense_healthy": true,
	"dealsense_ready":   true,

	// Ingestion metrics.
	"dealsense_ingestion_candidates_total":        true,
	"dealsense_ingestion_inserted_total":          true,
	"dealsense_ingestion_duplicates_total":        true,
	"dealsense_ingestion_invalid_total":           true,
	"dealsense_ingestion_errors_total":            true,
	"dealsense_source_fetch_errors_total":         true,
	"dealsense_ingestion_duration_seconds_bucket": true,

	// Trust and ranking metrics.
	"dealsense_trust_score_distribution_bucket": true,
	"dealsense_dedup_removed_total":             true,
	"dealsense_trust_cache_hits_total":          true,
	"dealsense_trust_cache_misses_total":        true,

	// Alert metrics.
	"dealsense_alerts_fired_total":                   true,
	"dealsense_notification_failures_total":          true,
	"dealsense_notification_duration_seconds_bucket": true,

	// Recording rules.
	"dealsense:http_requests:rate5m":         true,
	"dealsense:http_errors:rate5m":           true,
	"dealsense:http_unmatched:rate5m":        true,
	"dealsense:ingestion_candidates:rate5m":  true,
	"dealsense:ingestion_errors:rate5m":      true,
	"dealsense:source_fetch_errors:rate5m":   true,
	"dealsense:trust_cache_hit_ratio:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
