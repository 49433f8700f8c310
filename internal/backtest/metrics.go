package backtest

import (
	"math"
	"time"

	"github.com/quantbench/invest-backtest/pkg/types"
)

// Metrics holds the return and risk statistics derived from one completed
// timeline. HasData is false for an empty timeline; consumers render
// placeholders instead of treating the zero values as real returns.
type Metrics struct {
	HasData              bool
	CashIn               float64
	EndValue             float64
	PnL                  float64
	TotalReturn          float64
	CAGR                 float64
	AnnualizedVolatility float64
	Sharpe               float64
	MaxDrawdown          float64
}

// DrawdownPoint is one day's decline from the running peak, as a fraction
// at or below zero.
type DrawdownPoint struct {
	Date  time.Time
	Value float64
}

// ComputeMetrics derives Metrics from a timeline. It is a pure function:
// the same timeline always produces the same record.
func ComputeMetrics(timeline types.Timeline) Metrics {
	if len(timeline) == 0 {
		return Metrics{}
	}

	summary := timeline.Summarize()
	m := Metrics{
		HasData:  true,
		CashIn:   summary.CashIn,
		EndValue: summary.EndValue,
		PnL:      summary.EndValue - summary.CashIn,
	}

	if m.CashIn > 0 {
		m.TotalReturn = m.EndValue/m.CashIn - 1
	}

	years := timeline[len(timeline)-1].Date.Sub(timeline[0].Date).Hours() / (24 * 365.25)
	if m.CashIn > 0 && years > 0 {
		// The power law needs a non-negative base; a negative end value
		// cannot occur for a long-only portfolio but is clamped rather
		// than producing NaN.
		base := m.EndValue / m.CashIn
		if base < 0 {
			base = 0
		}
		m.CAGR = math.Pow(base, 1/years) - 1
	}

	m.AnnualizedVolatility = annualizedVolatility(timeline)
	if m.AnnualizedVolatility > 0 {
		m.Sharpe = m.CAGR / m.AnnualizedVolatility
	}

	for _, dd := range Drawdown(timeline) {
		if dd.Value < m.MaxDrawdown {
			m.MaxDrawdown = dd.Value
		}
	}

	return m
}

// Drawdown transforms a timeline's value column into its peak-relative
// drawdown curve, one point per entry, same date alignment.
func Drawdown(timeline types.Timeline) []DrawdownPoint {
	points := make([]DrawdownPoint, 0, len(timeline))
	peak := math.Inf(-1)
	for _, e := range timeline {
		if e.Value > peak {
			peak = e.Value
		}
		dd := 0.0
		if peak > 0 {
			dd = e.Value/peak - 1
		}
		points = append(points, DrawdownPoint{Date: e.Date, Value: dd})
	}
	return points
}

// annualizedVolatility is the sample standard deviation of daily returns
// (Bessel's correction) scaled by sqrt(365).
func annualizedVolatility(timeline types.Timeline) float64 {
	returns := make([]float64, 0, len(timeline))
	for i := 1; i < len(timeline); i++ {
		prev := timeline[i-1].Value
		if prev <= 0 {
			continue
		}
		r := timeline[i].Value/prev - 1
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		returns = append(returns, r)
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(365)
}
