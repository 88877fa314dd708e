package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// TrustDistribution returns a bar gauge panel showing how computed trust
// scores fall across histogram buckets.
func TrustDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Trust Score Distribution").
		Description("Distribution of computed trust scores (0-1)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(dealsense_trust_score_distribution_bucket{`+Job+`}[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// DedupRemoved returns a timeseries panel showing duplicates collapsed out
// of ranked lists.
func DedupRemoved() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Duplicates Collapsed / min").
		Description("Near-duplicate deals removed from ranked responses").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`rate(dealsense_dedup_removed_total{`+Job+`}[5m]) * 60`, "removed/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
