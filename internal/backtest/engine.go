package backtest

import (
	"math"
	"sync"
	"time"

	"github.com/quantbench/invest-backtest/internal/schedule"
	"github.com/quantbench/invest-backtest/internal/strategy"
	"github.com/quantbench/invest-backtest/pkg/types"
)

// Strategy display names, in the fixed order reports present them.
const (
	StrategyDCA      = "DCA"
	StrategyLumpSum  = "Lump Sum"
	StrategyDipBuy   = "Dip Buy"
	StrategyTrendDCA = "Trend DCA"
)

// StrategyNames returns the four strategies in report order.
func StrategyNames() []string {
	return []string{StrategyDCA, StrategyLumpSum, StrategyDipBuy, StrategyTrendDCA}
}

// Defaults substituted for missing or invalid configuration values.
const (
	DefaultAmount       = 0.0
	DefaultDipThreshold = 0.20
	DefaultMAWindow     = 200
)

// Config holds the invocation-time parameters shared by all simulations.
type Config struct {
	Start        time.Time
	End          time.Time
	Amount       float64
	Frequency    schedule.Frequency
	DipThreshold float64
	MAWindow     int
}

// Normalized returns a copy with an inverted date range swapped and
// out-of-range values replaced by their documented defaults. Every entry
// point normalizes, so callers may pass raw user input.
func (c Config) Normalized() Config {
	if c.End.Before(c.Start) {
		c.Start, c.End = c.End, c.Start
	}
	if c.Amount < 0 || math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
		c.Amount = DefaultAmount
	}
	if !c.Frequency.Valid() {
		c.Frequency = schedule.DefaultFrequency
	}
	if c.DipThreshold <= 0 || math.IsNaN(c.DipThreshold) {
		c.DipThreshold = DefaultDipThreshold
	}
	if c.MAWindow <= 0 {
		c.MAWindow = DefaultMAWindow
	}
	return c
}

// Result bundles one strategy's timeline with its final-state summary.
type Result struct {
	Strategy string
	Timeline types.Timeline
	Summary  types.Summary
}

// RunDCA invests a fixed amount on every scheduled day, buying immediately.
func RunDCA(series types.PriceSeries, cfg Config) Result {
	cfg = cfg.Normalized()
	positions := schedule.Build(series, cfg.Start, cfg.End, cfg.Frequency)
	return run(StrategyDCA, series, positions, strategy.NewImmediate(), cfg.Start, cfg.End, cfg.Amount)
}

// RunLumpSum invests the capital an equivalent DCA run would contribute
// (schedule length times amount) in a single purchase on the first trading
// day of the window, then marks to market. Deriving the total from the same
// schedule keeps the two strategies' invested capital identical.
func RunLumpSum(series types.PriceSeries, cfg Config) Result {
	cfg = cfg.Normalized()
	positions := schedule.Build(series, cfg.Start, cfg.End, cfg.Frequency)
	if len(positions) == 0 {
		return Result{Strategy: StrategyLumpSum, Timeline: types.Timeline{}}
	}
	total := float64(len(positions)) * cfg.Amount
	return run(StrategyLumpSum, series, positions[:1], strategy.NewImmediate(), cfg.Start, cfg.End, total)
}

// RunDipBuy accumulates scheduled contributions as idle cash and deploys
// the whole pile whenever the price sits at least DipThreshold below the
// running peak of the window. Cash never deployed stays in the pile and
// keeps counting toward portfolio value.
func RunDipBuy(series types.PriceSeries, cfg Config) Result {
	cfg = cfg.Normalized()
	positions := schedule.Build(series, cfg.Start, cfg.End, cfg.Frequency)
	return run(StrategyDipBuy, series, positions, strategy.NewDrawdownThreshold(cfg.DipThreshold), cfg.Start, cfg.End, cfg.Amount)
}

// RunTrendDCA accumulates scheduled contributions as idle cash and deploys
// the whole pile on any day the price closes above its trailing moving
// average. The average warms up from the start of the whole series.
func RunTrendDCA(series types.PriceSeries, cfg Config) Result {
	cfg = cfg.Normalized()
	positions := schedule.Build(series, cfg.Start, cfg.End, cfg.Frequency)
	return run(StrategyTrendDCA, series, positions, strategy.NewTrendFollowing(cfg.MAWindow), cfg.Start, cfg.End, cfg.Amount)
}

// RunAll runs the four strategies over the same window. The runs are
// independent pure computations, so they execute concurrently; results come
// back in report order.
func RunAll(series types.PriceSeries, cfg Config) []Result {
	runners := []func(types.PriceSeries, Config) Result{
		RunDCA, RunLumpSum, RunDipBuy, RunTrendDCA,
	}

	results := make([]Result, len(runners))
	var wg sync.WaitGroup
	for i, runner := range runners {
		wg.Add(1)
		go func(i int, runner func(types.PriceSeries, Config) Result) {
			defer wg.Done()
			results[i] = runner(series, cfg)
		}(i, runner)
	}
	wg.Wait()

	return results
}

// run is the single simulation loop every strategy shares. It walks the
// series once in date order, credits the cash pile on scheduled positions,
// and converts the pile to units whenever the trigger fires. The trigger
// observes every day from the start of the series so indicator warm-up
// precedes the window; timeline entries are emitted only inside it.
func run(name string, series types.PriceSeries, positions []int, trig strategy.Trigger, start, end time.Time, amount float64) Result {
	timeline := types.Timeline{}
	var cashIn, units, pile float64

	next := 0
	for i, p := range series {
		if p.Date.After(end) {
			break
		}
		inWindow := !p.Date.Before(start)
		trig.Observe(p.Price, inWindow)
		if !inWindow {
			continue
		}

		if next < len(positions) && positions[next] == i {
			cashIn += amount
			pile += amount
			next++
		}

		if pile > 0 && trig.Deploy() {
			units += pile / p.Price
			pile = 0
		}

		timeline = append(timeline, types.TimelineEntry{
			Date:          p.Date,
			Price:         p.Price,
			CashIn:        cashIn,
			Units:         units,
			CashPile:      pile,
			Value:         units*p.Price + pile,
			MovingAverage: trig.Indicator(),
		})
	}

	return Result{Strategy: name, Timeline: timeline, Summary: timeline.Summarize()}
}
