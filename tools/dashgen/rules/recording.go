package rules

// RecordingRules returns the pre-computed mock API request rates used by
// the dashboard and the alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("groceries-recording-rules", "groceries-recording",
		record("groceries:http_requests:rate5m",
			`sum(rate(groceries_http_requests_total[5m]))`),
		record("groceries:http_errors:rate5m",
			`sum(rate(groceries_http_requests_total{status=~"5.."}[5m]))`),
		record("groceries:http_unauthorized:rate5m",
			`sum(rate(groceries_http_requests_total{status="401"}[5m]))`),
	)
}
