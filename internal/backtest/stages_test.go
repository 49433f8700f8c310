package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/invest-backtest/internal/schedule"
	"github.com/quantbench/invest-backtest/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildStages_Yearly(t *testing.T) {
	stages := BuildStages(date(2020, time.March, 15), date(2022, time.June, 10), GranularityYear)

	require.Len(t, stages, 3)
	assert.Equal(t, []string{"2020", "2021", "2022"}, []string{stages[0].Label, stages[1].Label, stages[2].Label})
	assert.Equal(t, date(2020, time.March, 15), stages[0].Start)
	assert.Equal(t, date(2020, time.December, 31), stages[0].End)
	assert.Equal(t, date(2021, time.January, 1), stages[1].Start)
	assert.Equal(t, date(2022, time.June, 10), stages[2].End)
}

func TestBuildStages_Quarterly(t *testing.T) {
	stages := BuildStages(date(2021, time.February, 10), date(2021, time.August, 5), GranularityQuarter)

	require.Len(t, stages, 3)
	assert.Equal(t, "2021-Q1", stages[0].Label)
	assert.Equal(t, "2021-Q2", stages[1].Label)
	assert.Equal(t, "2021-Q3", stages[2].Label)
	assert.Equal(t, date(2021, time.March, 31), stages[0].End)
	assert.Equal(t, date(2021, time.April, 1), stages[1].Start)
	assert.Equal(t, date(2021, time.June, 30), stages[1].End)
	assert.Equal(t, date(2021, time.August, 5), stages[2].End)
}

func TestBuildStages_Monthly(t *testing.T) {
	stages := BuildStages(date(2021, time.November, 20), date(2022, time.January, 10), GranularityMonth)

	require.Len(t, stages, 3)
	assert.Equal(t, "2021-11", stages[0].Label)
	assert.Equal(t, "2021-12", stages[1].Label)
	assert.Equal(t, "2022-01", stages[2].Label)
}

func TestBuildStages_TilesWindowExactly(t *testing.T) {
	start := date(2019, time.May, 7)
	end := date(2023, time.February, 19)

	for _, g := range []Granularity{GranularityMonth, GranularityQuarter, GranularityYear} {
		stages := BuildStages(start, end, g)

		require.NotEmpty(t, stages)
		assert.Equal(t, start, stages[0].Start, g)
		assert.Equal(t, end, stages[len(stages)-1].End, g)
		for i := 1; i < len(stages); i++ {
			// contiguous: each stage starts the day after the previous ends
			assert.Equal(t, stages[i-1].End.AddDate(0, 0, 1), stages[i].Start, g)
		}
	}
}

func TestBuildStages_SingleDayWindow(t *testing.T) {
	d := date(2021, time.July, 4)
	stages := BuildStages(d, d, GranularityMonth)

	require.Len(t, stages, 1)
	assert.Equal(t, d, stages[0].Start)
	assert.Equal(t, d, stages[0].End)
}

func TestBuildStages_InvertedRangeSwapped(t *testing.T) {
	stages := BuildStages(date(2022, time.May, 1), date(2021, time.May, 1), GranularityYear)

	require.NotEmpty(t, stages)
	assert.Equal(t, date(2021, time.May, 1), stages[0].Start)
}

func TestBuildStages_UnknownGranularityDefaultsToYear(t *testing.T) {
	stages := BuildStages(date(2020, time.January, 1), date(2021, time.December, 31), Granularity("week"))

	require.Len(t, stages, 2)
	assert.Equal(t, "2020", stages[0].Label)
}

// growthSeries builds a daily series covering [start, start+days) with the
// given per-day growth factor.
func growthSeries(start time.Time, days int, factor float64) types.PriceSeries {
	points := make([]types.PricePoint, days)
	price := 100.0
	for i := 0; i < days; i++ {
		points[i] = types.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
		price *= factor
	}
	return types.NewPriceSeries(points)
}

func TestComputeStageReturns_AllStrategiesAllStages(t *testing.T) {
	start := date(2021, time.January, 1)
	series := growthSeries(start, 365, 1.001)
	cfg := Config{
		Start:     start,
		End:       start.AddDate(0, 0, 364),
		Amount:    100,
		Frequency: schedule.Weekly,
	}

	sr := ComputeStageReturns(series, cfg, GranularityQuarter)

	require.Equal(t, []string{"2021-Q1", "2021-Q2", "2021-Q3", "2021-Q4"}, sr.Labels)
	require.Len(t, sr.Returns, 4)
	for _, name := range StrategyNames() {
		require.Len(t, sr.Returns[name], 4, name)
	}

	// steadily rising prices: DCA and lump sum gain in every stage
	for i := range sr.Labels {
		assert.Greater(t, sr.Returns[StrategyDCA][i], 0.0)
		assert.Greater(t, sr.Returns[StrategyLumpSum][i], 0.0)
	}
}

func TestComputeStageReturns_StagesAreIsolated(t *testing.T) {
	start := date(2021, time.January, 1)
	series := growthSeries(start, 120, 1.002)
	cfg := Config{
		Start:     start,
		End:       start.AddDate(0, 0, 119),
		Amount:    50,
		Frequency: schedule.Daily,
	}

	sr := ComputeStageReturns(series, cfg, GranularityMonth)

	// each stage must equal a fresh run restricted to that stage
	stages := BuildStages(cfg.Start, cfg.End, GranularityMonth)
	require.Len(t, sr.Labels, len(stages))
	for i, stage := range stages {
		stageCfg := cfg
		stageCfg.Start = stage.Start
		stageCfg.End = stage.End
		m := ComputeMetrics(RunDCA(series, stageCfg).Timeline)
		assert.InDelta(t, m.TotalReturn, sr.Returns[StrategyDCA][i], 1e-12, stage.Label)
	}
}

func TestComputeStageReturns_EmptyStageDefaultsToZero(t *testing.T) {
	start := date(2021, time.January, 1)
	// data covers January only, but the window asks for a full quarter
	series := growthSeries(start, 31, 1.001)
	cfg := Config{
		Start:     start,
		End:       date(2021, time.June, 30),
		Amount:    100,
		Frequency: schedule.Weekly,
	}

	sr := ComputeStageReturns(series, cfg, GranularityMonth)

	require.Len(t, sr.Labels, 6)
	for _, name := range StrategyNames() {
		for i := 1; i < 6; i++ {
			assert.Equal(t, 0.0, sr.Returns[name][i], "%s stage %s", name, sr.Labels[i])
		}
	}
}

func TestComputeStageReturns_EmptyWindow(t *testing.T) {
	sr := ComputeStageReturns(types.PriceSeries{}, Config{
		Start:     date(2021, time.January, 1),
		End:       date(2021, time.December, 31),
		Amount:    100,
		Frequency: schedule.Monthly,
	}, GranularityYear)

	require.Len(t, sr.Labels, 1)
	for _, name := range StrategyNames() {
		assert.Equal(t, []float64{0}, sr.Returns[name])
	}
}
