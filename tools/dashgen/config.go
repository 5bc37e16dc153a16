package main

import "errors"

// KnownMetrics is the set of metric names exported by the groceries CLI
// and mock API plus recording rule names referenced in dashboards and
// alerts.
var KnownMetrics = map[string]bool{
	// Mock API HTTP metrics.
	"groceries_http_request_duration_seconds": true,
	"groceries_http_requests_total":           true,
	"groceries_status_up":                     true,

	// CLI metrics, pushed.
	"groceries_client_requests_total":           true,
	"groceries_client_request_duration_seconds": true,
	"groceries_wizard_attempts_total":           true,
	"groceries_commands_total":                  true,

	// Recording rules.
	"groceries:http_requests:rate5m":     true,
	"groceries:http_errors:rate5m":       true,
	"groceries:http_unauthorized:rate5m": true,

	// Standard Prometheus and pushgateway metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
	"push_time_seconds":          true,
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
