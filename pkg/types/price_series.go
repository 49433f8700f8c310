package types

import (
	"sort"
	"time"
)

// PricePoint is one daily sample of an asset price.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceSeries is a sequence of price samples, ascending by date with no
// duplicate dates. It is immutable once built and safe to share across
// concurrent simulations.
type PriceSeries []PricePoint

// NewPriceSeries builds a series from raw samples: non-positive prices are
// dropped, the result is sorted ascending by date, and duplicate dates are
// collapsed (the last sample for a date wins).
func NewPriceSeries(points []PricePoint) PriceSeries {
	cleaned := make([]PricePoint, 0, len(points))
	for _, p := range points {
		if p.Price > 0 {
			cleaned = append(cleaned, p)
		}
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Date.Before(cleaned[j].Date)
	})

	series := cleaned[:0]
	for _, p := range cleaned {
		if len(series) > 0 && series[len(series)-1].Date.Equal(p.Date) {
			series[len(series)-1] = p
			continue
		}
		series = append(series, p)
	}

	return PriceSeries(series)
}

// SearchDate returns the index of the first sample with a date at or after
// the given date, or len(series) if no such sample exists.
func (s PriceSeries) SearchDate(date time.Time) int {
	return sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(date)
	})
}

// LastDate returns the date of the final sample. It panics on an empty
// series; callers check length first.
func (s PriceSeries) LastDate() time.Time {
	return s[len(s)-1].Date
}
