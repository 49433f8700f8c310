package strategy

import (
	"github.com/quantbench/invest-backtest/internal/indicators"
)

// TrendFollowing withholds contributions until the price closes above its
// trailing simple moving average, then releases the whole pile. The average
// warms up from the start of the whole series, so days observed before the
// window fills can never deploy.
type TrendFollowing struct {
	sma   *indicators.SMA
	price float64
}

// NewTrendFollowing creates a trend trigger with the given moving-average
// window in days.
func NewTrendFollowing(window int) *TrendFollowing {
	return &TrendFollowing{sma: indicators.NewSMA(window)}
}

func (t *TrendFollowing) Observe(price float64, inWindow bool) {
	t.price = price
	t.sma.Update(price)
}

func (t *TrendFollowing) Deploy() bool {
	return t.sma.Ready() && t.price > t.sma.Value()
}

// Indicator returns the current moving average, NaN until the window fills.
func (t *TrendFollowing) Indicator() float64 {
	return t.sma.Value()
}

func (t *TrendFollowing) GetName() string {
	return "TrendFollowing"
}
