package strategy

import "math"

// Immediate deploys the cash pile the same day it is contributed. Plain
// dollar-cost averaging and lump-sum runs both use it: whatever lands in
// the pile converts to units at that day's price.
type Immediate struct{}

// NewImmediate creates the always-deploy trigger.
func NewImmediate() *Immediate {
	return &Immediate{}
}

func (i *Immediate) Observe(price float64, inWindow bool) {}

func (i *Immediate) Deploy() bool {
	return true
}

func (i *Immediate) Indicator() float64 {
	return math.NaN()
}

func (i *Immediate) GetName() string {
	return "Immediate"
}
