package types

import "time"

// TimelineEntry is the portfolio state on one trading day of a simulation.
// Value always equals Units*Price + CashPile; strategies that invest
// immediately carry a zero CashPile. MovingAverage is NaN except for
// trend-following runs once the indicator window has filled.
type TimelineEntry struct {
	Date          time.Time
	Price         float64
	CashIn        float64 // cumulative contributions, never decreases
	Units         float64 // asset units held, never decreases (no sell path)
	CashPile      float64 // withheld contributions awaiting deployment
	Value         float64
	MovingAverage float64
}

// Timeline is the day-by-day record of one strategy simulation, one entry
// per price-series day inside the active date window.
type Timeline []TimelineEntry

// Summary is the final-state snapshot of a Timeline.
type Summary struct {
	CashIn   float64
	Units    float64
	EndValue float64
}

// Summarize returns the last entry's state, or a zero Summary for an empty
// timeline.
func (t Timeline) Summarize() Summary {
	if len(t) == 0 {
		return Summary{}
	}
	last := t[len(t)-1]
	return Summary{CashIn: last.CashIn, Units: last.Units, EndValue: last.Value}
}

// Stage is a calendar-aligned sub-interval of a backtest window. Stages
// produced for a window tile it contiguously with no gaps or overlaps.
type Stage struct {
	Start time.Time
	End   time.Time
	Label string
}
