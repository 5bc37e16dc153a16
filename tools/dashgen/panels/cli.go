package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CommandResults returns a bar gauge of pushed command outcomes.
func CommandResults() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Command Results").
		Description("Outcome of the most recently pushed CLI commands").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(groceries_commands_total{job="groceries_cli"}) by (command, result)`,
			"{{command}} {{result}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(Steps("green")).
		ColorScheme(ColorClassic())
}

// WizardOutcomes returns a bar gauge of setup attempts by step and outcome.
func WizardOutcomes() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Setup Attempts").
		Description("Setup wizard attempts by step and outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(groceries_wizard_attempts_total{job="groceries_cli"}) by (step, outcome)`,
			"{{step}} {{outcome}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(Steps("green")).
		ColorScheme(ColorClassic())
}

// ClientRequests returns a timeseries panel of API calls made by the CLI,
// split by HTTP status.
func ClientRequests() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Client Requests").
		Description("Requests sent by the CLI to the grocery API, by method and status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(groceries_client_requests_total{job="groceries_cli"}) by (method, status)`,
			"{{method}} {{status}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(Steps("green")).
		ColorScheme(ColorClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ClientLatency returns a timeseries panel of CLI request latency as seen
// by the client.
func ClientLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Client Latency (p95)").
		Description("95th percentile request duration measured by the CLI").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(groceries_client_request_duration_seconds_bucket{job="groceries_cli"}) by (le, method))`,
			"{{method}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(Steps("green", At(1, "yellow"), At(5, "red"))).
		ColorScheme(ColorClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
