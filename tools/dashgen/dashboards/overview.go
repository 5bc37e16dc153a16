// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/groceries/tools/dashgen/panels"
)

// OverviewUID is the stable UID of the overview dashboard.
const OverviewUID = "groceries-overview"

// BuildOverview constructs the Groceries Overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Groceries Overview").
		Uid(OverviewUID).
		Tags([]string{"groceries"}).
		Refresh("30s").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.StatusStat()).
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.LastPushStat()).
		WithPanel(panels.WizardAbortsStat()))

	// Row 2: Mock API.
	b.WithRow(dashboard.NewRowBuilder("Mock API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: CLI.
	b.WithRow(dashboard.NewRowBuilder("CLI").
		WithPanel(panels.CommandResults()).
		WithPanel(panels.WizardOutcomes()).
		WithPanel(panels.ClientRequests()).
		WithPanel(panels.ClientLatency()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
