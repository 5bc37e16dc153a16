package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// StatusStat returns a stat panel showing the last /status probe result.
func StatusStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Status").
		Description("Last /status probe answered by the mock API (1 = ok, 0 = failing)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`groceries_status_up`, "", "A")).
		Thresholds(Steps("red", At(1, "green"))).
		ColorScheme(ColorByThreshold()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// UptimeStat returns a stat panel showing mock API process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since the mock API process started").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - process_start_time_seconds{job="groceries-mock-api"}`,
			"", "A",
		)).
		Unit("s").
		Thresholds(Steps("green")).
		ColorScheme(ColorByThreshold()).
		GraphMode(common.BigValueGraphModeNone)
}

// LastPushStat returns a stat panel showing how long ago a CLI run last
// pushed its metrics.
func LastPushStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last CLI Push").
		Description("Time since a groceries command last pushed metrics to the pushgateway").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - push_time_seconds{job="groceries_cli"}`,
			"", "A",
		)).
		Unit("s").
		Thresholds(Steps("green", At(86400, "yellow"), At(604800, "red"))).
		ColorScheme(ColorByThreshold()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// WizardAbortsStat returns a stat panel counting setup steps that did not
// complete in the last day.
func WizardAbortsStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Setup Failures (24h)").
		Description("Failed setup wizard attempts reported by the CLI in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`sum(increase(groceries_wizard_attempts_total{job="groceries_cli",outcome!="success"}[24h]))`,
			"", "A",
		)).
		Thresholds(Steps("green", At(1, "yellow"), At(5, "red"))).
		ColorScheme(ColorByThreshold()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
