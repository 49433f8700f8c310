package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/invest-backtest/internal/backtest"
	"github.com/quantbench/invest-backtest/internal/schedule"
	"github.com/quantbench/invest-backtest/pkg/types"
)

func sampleReport(t *testing.T) *BacktestReport {
	t.Helper()

	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]types.PricePoint, 90)
	price := 100.0
	for i := range points {
		points[i] = types.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
		price *= 1.001
	}
	series := types.NewPriceSeries(points)

	cfg := backtest.Config{
		Start:     start,
		End:       start.AddDate(0, 0, 89),
		Amount:    100,
		Frequency: schedule.Weekly,
	}.Normalized()

	results := backtest.RunAll(series, cfg)
	stages := backtest.ComputeStageReturns(series, cfg, backtest.GranularityMonth)
	return NewBacktestReport(results, stages, cfg)
}

func TestNewBacktestReport_ComputesMetricsPerStrategy(t *testing.T) {
	report := sampleReport(t)

	require.Len(t, report.Strategies, 4)
	for _, s := range report.Strategies {
		assert.True(t, s.Metrics.HasData, s.Name)
		assert.Len(t, s.Drawdown, len(s.Timeline), s.Name)
	}
	assert.Equal(t, backtest.StrategyNames()[0], report.Strategies[0].Name)
}

func TestWriteTimelinesCSV(t *testing.T) {
	report := sampleReport(t)
	dir := t.TempDir()

	require.NoError(t, NewDefaultCSVReporter().WriteTimelinesCSV(report, dir))

	for _, name := range []string{"timeline_dca.csv", "timeline_lump_sum.csv", "timeline_dip_buy.csv", "timeline_trend_dca.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteStageReturnsCSV(t *testing.T) {
	report := sampleReport(t)
	path := filepath.Join(t.TempDir(), "stages.csv")

	require.NoError(t, NewDefaultCSVReporter().WriteStageReturnsCSV(report, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2022-01")
	assert.Contains(t, string(raw), "DCA")
}

func TestWriteReportJSON(t *testing.T) {
	report := sampleReport(t)
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, NewDefaultJSONReporter().WriteReportJSON(report, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "strategies")
	assert.Contains(t, doc, "stage_returns")
}

func TestWriteReportXLSX(t *testing.T) {
	report := sampleReport(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, NewDefaultExcelReporter().WriteReportXLSX(report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDefaultReporter_SatisfiesReporter(t *testing.T) {
	var _ Reporter = NewDefaultReporter()
}

func TestGetDefaultOutputDir(t *testing.T) {
	dir := NewDefaultPathManager().GetDefaultOutputDir("out", "data/btc_daily.csv")

	assert.Contains(t, dir, filepath.Join("out", "btc_daily_"))
}
