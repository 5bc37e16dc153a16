package rules

// AlertRules returns the alerts for the mock API and the CLI's pushed
// metrics.
func AlertRules() PrometheusRule {
	return newPrometheusRule("groceries-alerts", "groceries-alerts",
		alert("GroceriesMockAPIDown",
			`absent(up{job="groceries-mock-api"})`, "2m", SeverityCritical,
			"Groceries mock API is down",
			"The groceries-mock-api job has been absent for more than 2 minutes."),
		alert("GroceriesStatusFailing",
			`groceries_status_up == 0`, "2m", SeverityCritical,
			"Groceries API status probe is failing",
			"The last /status probe answered with a non-2xx status for more than 2 minutes."),
		alert("GroceriesHighErrorRate",
			`groceries:http_errors:rate5m / groceries:http_requests:rate5m > 0.05`, "5m", SeverityWarning,
			"High HTTP error rate on the groceries mock API",
			"More than 5% of requests are returning 5xx errors over the last 5 minutes."),
		alert("GroceriesLoginFailures",
			`groceries:http_unauthorized:rate5m > 0.5`, "5m", SeverityWarning,
			"Many unauthorized requests",
			"The mock API is rejecting more than 0.5 requests/s with 401 over the last 5 minutes."),
		alert("GroceriesSetupAborted",
			`sum(groceries_commands_total{job="groceries_cli",result="aborted"}) > 0`, "0m", SeverityInfo,
			"A groceries command aborted during setup",
			"The last pushed CLI run aborted in the setup wizard."),
	)
}
