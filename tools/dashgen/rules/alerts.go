package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// dealsense operational monitoring.
func AlertRules() PrometheusRule {
	return newRuleCR("dealsense-alerts", "dealsense-alerts",
		alert("DealsenseDown", Critical,
			`absent(up{job="dealsense"})`, "2m",
			"DealSense is down",
			"The dealsense job has been absent for more than 2 minutes."),
		alert("DealsenseReadinessDown", Critical,
			`dealsense_ready == 0`, "2m",
			"DealSense readiness check is failing",
			"The deal store has been unreachable for more than 2 minutes."),
		alert("DealsenseHighErrorRate", Warning,
			`dealsense:http_errors:rate5m / dealsense:http_requests:rate5m > 0.05`, "5m",
			"High HTTP error rate on DealSense",
			"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
		alert("DealsenseIngestionErrors", Warning,
			`dealsense:ingestion_errors:rate5m > 0`, "5m",
			"Ingestion errors detected",
			"The ingestion pipeline has been producing errors for more than 5 minutes."),
		alert("DealsenseSourceFetchFailing", Warning,
			`dealsense:source_fetch_errors:rate5m > 0`, "15m",
			"Deal source {{ $labels.source }} is failing",
			"Fetches from {{ $labels.source }} have failed continuously for 15 minutes."),
		alert("DealsenseNoCandidates", Warning,
			`sum(increase(dealsense_ingestion_candidates_total[2h])) == 0`, "10m",
			"No deal candidates ingested",
			"No source has returned any candidates in the last 2 hours."),
		alert("DealsenseNotificationFailures", Warning,
			`increase(dealsense_notification_failures_total[5m]) > 0`, "1m",
			"Notification delivery failures detected",
			"One or more alert notifications (Discord webhooks) have failed to send."),
	)
}
