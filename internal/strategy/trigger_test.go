package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmediate_AlwaysDeploys(t *testing.T) {
	trig := NewImmediate()

	trig.Observe(100, true)
	assert.True(t, trig.Deploy())
	assert.True(t, math.IsNaN(trig.Indicator()))
}

func TestDrawdownThreshold_NoDeployBeforeDip(t *testing.T) {
	trig := NewDrawdownThreshold(0.20)

	trig.Observe(100, true)
	assert.False(t, trig.Deploy())

	trig.Observe(90, true) // 10% below peak
	assert.False(t, trig.Deploy())
}

func TestDrawdownThreshold_DeploysAtThreshold(t *testing.T) {
	trig := NewDrawdownThreshold(0.20)

	trig.Observe(100, true)
	trig.Observe(80, true) // exactly 20% below peak
	assert.True(t, trig.Deploy())

	trig.Observe(50, true) // deeper dip still triggers
	assert.True(t, trig.Deploy())
}

func TestDrawdownThreshold_PeakOnlyTracksWindow(t *testing.T) {
	trig := NewDrawdownThreshold(0.20)

	// a high price before the window must not set the peak
	trig.Observe(1000, false)
	trig.Observe(100, true)
	assert.False(t, trig.Deploy())

	trig.Observe(79, true)
	assert.True(t, trig.Deploy())
}

func TestDrawdownThreshold_NoObservations(t *testing.T) {
	trig := NewDrawdownThreshold(0.20)
	assert.False(t, trig.Deploy())
}

func TestTrendFollowing_NoDeployDuringWarmup(t *testing.T) {
	trig := NewTrendFollowing(5)

	for i := 0; i < 4; i++ {
		trig.Observe(100, true)
		assert.False(t, trig.Deploy())
		assert.True(t, math.IsNaN(trig.Indicator()))
	}
}

func TestTrendFollowing_DeploysAboveAverage(t *testing.T) {
	trig := NewTrendFollowing(3)

	trig.Observe(100, true)
	trig.Observe(100, true)
	trig.Observe(100, true)
	assert.False(t, trig.Deploy()) // price equals the average

	trig.Observe(110, true)
	assert.True(t, trig.Deploy())
	assert.InDelta(t, (100.0+100.0+110.0)/3, trig.Indicator(), 1e-9)
}

func TestTrendFollowing_WarmupCountsPreWindowDays(t *testing.T) {
	trig := NewTrendFollowing(3)

	// days before the window still feed the average
	trig.Observe(100, false)
	trig.Observe(100, false)
	trig.Observe(120, true)
	assert.True(t, trig.Deploy())
}

func TestTriggerInterfaceCompliance(t *testing.T) {
	var _ Trigger = NewImmediate()
	var _ Trigger = NewDrawdownThreshold(0.20)
	var _ Trigger = NewTrendFollowing(200)
}
