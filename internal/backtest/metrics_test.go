package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/invest-backtest/internal/schedule"
	"github.com/quantbench/invest-backtest/pkg/types"
)

func TestComputeMetrics_EmptyTimeline(t *testing.T) {
	m := ComputeMetrics(types.Timeline{})

	assert.False(t, m.HasData)
	assert.Equal(t, 0.0, m.TotalReturn)
	assert.Equal(t, 0.0, m.CAGR)
	assert.Equal(t, 0.0, m.MaxDrawdown)
}

func TestComputeMetrics_FlatSeries(t *testing.T) {
	series := flatSeries(10, 100)
	cfg := fullWindowConfig(series, 100, schedule.Daily)
	result := RunDCA(series, cfg)

	m := ComputeMetrics(result.Timeline)

	require.True(t, m.HasData)
	assert.Equal(t, 1000.0, m.CashIn)
	assert.InDelta(t, 1000.0, m.EndValue, 1e-9)
	assert.InDelta(t, 0.0, m.PnL, 1e-9)
	assert.Equal(t, 0.0, m.TotalReturn)
	// contributions still move day-to-day value, so volatility is not
	// asserted here; a flat price can't draw the portfolio down though
	assert.Equal(t, 0.0, m.Sharpe)
	assert.Equal(t, 0.0, m.MaxDrawdown)
}

func TestComputeMetrics_BasicReturn(t *testing.T) {
	timeline := types.Timeline{
		{Date: day(0), Price: 100, CashIn: 100, Units: 1, Value: 100},
		{Date: day(365), Price: 150, CashIn: 100, Units: 1, Value: 150},
	}

	m := ComputeMetrics(timeline)

	assert.InDelta(t, 0.5, m.TotalReturn, 1e-9)
	assert.InDelta(t, 50.0, m.PnL, 1e-9)
	// one year minus the leap-day fraction, CAGR just above 50%
	assert.InDelta(t, math.Pow(1.5, 365.25/365.0)-1, m.CAGR, 1e-9)
}

func TestComputeMetrics_ZeroCashIn(t *testing.T) {
	timeline := types.Timeline{
		{Date: day(0), Price: 100, Value: 0},
		{Date: day(1), Price: 110, Value: 0},
	}

	m := ComputeMetrics(timeline)

	assert.True(t, m.HasData)
	assert.Equal(t, 0.0, m.TotalReturn)
	assert.Equal(t, 0.0, m.CAGR)
}

func TestComputeMetrics_MaxDrawdown(t *testing.T) {
	timeline := types.Timeline{
		{Date: day(0), Value: 100},
		{Date: day(1), Value: 120},
		{Date: day(2), Value: 60}, // 50% off the 120 peak
		{Date: day(3), Value: 130},
		{Date: day(4), Value: 117},
	}

	m := ComputeMetrics(timeline)

	assert.InDelta(t, -0.5, m.MaxDrawdown, 1e-9)
	assert.LessOrEqual(t, m.MaxDrawdown, 0.0)
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	series := dailySeries(100, 95, 120, 80, 140, 110)
	result := RunDCA(series, fullWindowConfig(series, 50, schedule.Daily))

	first := ComputeMetrics(result.Timeline)
	second := ComputeMetrics(result.Timeline)

	assert.Equal(t, first, second)
}

func TestComputeMetrics_VolatilityUsesSampleVariance(t *testing.T) {
	timeline := types.Timeline{
		{Date: day(0), Value: 100},
		{Date: day(1), Value: 110}, // +10%
		{Date: day(2), Value: 99},  // -10%
	}

	m := ComputeMetrics(timeline)

	// returns {0.1, -0.1}: mean 0, sample variance 0.02/(2-1)
	expected := math.Sqrt(0.02) * math.Sqrt(365)
	assert.InDelta(t, expected, m.AnnualizedVolatility, 1e-9)
}

func TestDrawdown_BoundAndAlignment(t *testing.T) {
	series := dailySeries(100, 120, 60, 130, 90)
	result := RunLumpSum(series, fullWindowConfig(series, 100, schedule.Daily))

	points := Drawdown(result.Timeline)

	require.Len(t, points, len(result.Timeline))
	for i, p := range points {
		assert.LessOrEqual(t, p.Value, 0.0)
		assert.Equal(t, result.Timeline[i].Date, p.Date)
	}
}

func TestDrawdown_NeverDrawsDown(t *testing.T) {
	timeline := types.Timeline{
		{Date: day(0), Value: 100},
		{Date: day(1), Value: 110},
		{Date: day(2), Value: 120},
	}

	for _, p := range Drawdown(timeline) {
		assert.Equal(t, 0.0, p.Value)
	}
}

func TestDrawdown_ZeroValuesProduceZero(t *testing.T) {
	timeline := types.Timeline{
		{Date: day(0), Value: 0},
		{Date: day(1), Value: 0},
	}

	for _, p := range Drawdown(timeline) {
		assert.Equal(t, 0.0, p.Value)
	}
}

func TestDrawdown_Empty(t *testing.T) {
	assert.Empty(t, Drawdown(types.Timeline{}))
}
