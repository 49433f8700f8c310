package indicators

import "math"

// SMA is a streaming simple moving average over a fixed trailing window of
// prices. Each Update is O(1): a running sum replaces the sample falling
// out of the window with the incoming one.
type SMA struct {
	period int
	window []float64
	head   int
	count  int
	sum    float64
}

// NewSMA creates an SMA with the given window length in samples. Periods
// below 1 are treated as 1.
func NewSMA(period int) *SMA {
	if period < 1 {
		period = 1
	}
	return &SMA{
		period: period,
		window: make([]float64, period),
	}
}

// Update feeds the next price and returns the average over the trailing
// window, or NaN while fewer than period samples have been seen.
func (s *SMA) Update(price float64) float64 {
	if s.count == s.period {
		s.sum -= s.window[s.head]
	} else {
		s.count++
	}
	s.window[s.head] = price
	s.sum += price
	s.head = (s.head + 1) % s.period

	return s.Value()
}

// Value returns the current average, or NaN until the window has filled.
func (s *SMA) Value() float64 {
	if s.count < s.period {
		return math.NaN()
	}
	return s.sum / float64(s.period)
}

// Ready reports whether the window has filled.
func (s *SMA) Ready() bool {
	return s.count == s.period
}

// Period returns the window length in samples.
func (s *SMA) Period() int {
	return s.period
}
