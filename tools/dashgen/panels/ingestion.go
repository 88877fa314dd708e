package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CandidatesRate returns a timeseries panel showing fetched candidates per
// minute, split by source.
func CandidatesRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Candidates / min").
		Description("Deal candidates fetched per minute by source").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`dealsense:ingestion_candidates:rate5m * 60`, "{{source}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StoredOutcomes returns a timeseries panel comparing inserted, duplicate,
// and invalid candidates per cycle window.
func StoredOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Candidate Outcomes").
		Description("Inserted, duplicate, and rejected candidates per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(dealsense_ingestion_inserted_total{`+Job+`}[1h])`, "inserted", "A")).
		WithTarget(PromQuery(`increase(dealsense_ingestion_duplicates_total{`+Job+`}[1h])`, "duplicate", "B")).
		WithTarget(PromQuery(`increase(dealsense_ingestion_invalid_total{`+Job+`}[1h])`, "invalid", "C")).
		FillOpacity(20).
		LineWidth(1).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// IngestionErrors returns a timeseries panel showing pipeline and source
// fetch errors per minute.
func IngestionErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Errors / min").
		Description("Ingestion errors and failed source fetches per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`dealsense:ingestion_errors:rate5m * 60`, "pipeline", "A")).
		WithTarget(PromQuery(`dealsense:source_fetch_errors:rate5m * 60`, "{{source}}", "B")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CycleDuration returns a timeseries panel showing the p95 ingestion cycle
// duration.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycle Duration (p95)").
		Description("95th percentile ingestion cycle duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(Quantile("0.95", "dealsense_ingestion_duration_seconds_bucket"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
