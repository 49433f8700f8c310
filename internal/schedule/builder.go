package schedule

import (
	"time"

	"github.com/quantbench/invest-backtest/pkg/types"
)

// Frequency is how often a contribution is scheduled.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// DefaultFrequency is used when a caller supplies an unknown frequency.
const DefaultFrequency = Monthly

// StepDays maps a frequency to its calendar-day step.
func (f Frequency) StepDays() int {
	switch f {
	case Daily:
		return 1
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return DefaultFrequency.StepDays()
	}
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	return f == Daily || f == Weekly || f == Monthly
}

// Build returns the series positions at which one contribution occurs,
// stepping a cursor through [start, end] by the frequency's calendar-day
// step and resolving each tick to the first trading day at or after it.
//
// Positions are strictly ascending: ticks that land in the same data gap
// resolve to the same trading day and are collapsed into one contribution.
func Build(series types.PriceSeries, start, end time.Time, freq Frequency) []int {
	if len(series) == 0 {
		return nil
	}

	iStart := series.SearchDate(start)
	if iStart == len(series) {
		return nil
	}

	endDate := end
	if last := series.LastDate(); last.Before(endDate) {
		endDate = last
	}

	step := freq.StepDays()
	var positions []int

	// The cursor only moves forward, so the scan for the next trading day
	// resumes from the previous match instead of restarting.
	j := iStart
	for cursor := series[iStart].Date; !cursor.After(endDate); cursor = cursor.AddDate(0, 0, step) {
		for j < len(series) && series[j].Date.Before(cursor) {
			j++
		}
		if j == len(series) || series[j].Date.After(endDate) {
			break
		}
		if n := len(positions); n == 0 || positions[n-1] != j {
			positions = append(positions, j)
		}
	}

	return positions
}
