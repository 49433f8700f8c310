package strategy

import "math"

// DrawdownThreshold withholds contributions until the price has fallen at
// least threshold (a fraction, e.g. 0.20) from the highest price seen so
// far inside the active window, then releases the whole pile.
type DrawdownThreshold struct {
	threshold float64
	peak      float64
	price     float64
}

// NewDrawdownThreshold creates a dip-buy trigger with the given drawdown
// fraction.
func NewDrawdownThreshold(threshold float64) *DrawdownThreshold {
	return &DrawdownThreshold{threshold: threshold}
}

func (d *DrawdownThreshold) Observe(price float64, inWindow bool) {
	if !inWindow {
		return
	}
	d.price = price
	if price > d.peak {
		d.peak = price
	}
}

func (d *DrawdownThreshold) Deploy() bool {
	if d.peak <= 0 {
		return false
	}
	return (d.peak-d.price)/d.peak >= d.threshold
}

func (d *DrawdownThreshold) Indicator() float64 {
	return math.NaN()
}

func (d *DrawdownThreshold) GetName() string {
	return "DrawdownThreshold"
}
