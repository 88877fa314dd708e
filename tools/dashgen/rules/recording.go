package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newRuleCR("dealsense-recording-rules", "dealsense-recording",
		record("dealsense:http_requests:rate5m",
			`sum(rate(dealsense_http_requests_total[5m]))`),
		record("dealsense:http_errors:rate5m",
			`sum(rate(dealsense_http_requests_total{status=~"5.."}[5m]))`),
		record("dealsense:http_unmatched:rate5m",
			`sum(rate(dealsense_http_requests_total{path="unmatched"}[5m]))`),
		record("dealsense:ingestion_candidates:rate5m",
			`sum by (source) (rate(dealsense_ingestion_candidates_total[5m]))`),
		record("dealsense:ingestion_errors:rate5m",
			`rate(dealsense_ingestion_errors_total[5m])`),
		record("dealsense:source_fetch_errors:rate5m",
			`sum by (source) (rate(dealsense_source_fetch_errors_total[5m]))`),
		record("dealsense:trust_cache_hit_ratio:rate5m",
			`rate(dealsense_trust_cache_hits_total[5m]) / `+
				`(rate(dealsense_trust_cache_hits_total[5m]) + rate(dealsense_trust_cache_misses_total[5m]))`),
	)
}
