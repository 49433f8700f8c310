package backtest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/quantbench/invest-backtest/pkg/types"
)

// Granularity selects the calendar unit stages are aligned to.
type Granularity string

const (
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// DefaultGranularity is used when a caller supplies an unknown granularity.
const DefaultGranularity = GranularityYear

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	return g == GranularityMonth || g == GranularityQuarter || g == GranularityYear
}

// BuildStages partitions [start, end] into calendar-aligned stages. The
// stages tile the window exactly: the first starts at start, the last ends
// at end, and consecutive stages touch with no gap or overlap.
func BuildStages(start, end time.Time, g Granularity) []types.Stage {
	if !g.Valid() {
		g = DefaultGranularity
	}
	if end.Before(start) {
		start, end = end, start
	}

	var stages []types.Stage
	for cur := start; !cur.After(end); {
		next := nextBoundary(cur, g)
		stageEnd := next.AddDate(0, 0, -1)
		if stageEnd.After(end) {
			stageEnd = end
		}
		stages = append(stages, types.Stage{
			Start: cur,
			End:   stageEnd,
			Label: stageLabel(cur, g),
		})
		cur = next
	}
	return stages
}

// nextBoundary returns the first day of the calendar unit following the one
// containing t.
func nextBoundary(t time.Time, g Granularity) time.Time {
	y, m, _ := t.Date()
	switch g {
	case GranularityMonth:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	case GranularityQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 3, 0)
	default:
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, t.Location())
	}
}

func stageLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityQuarter:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return strconv.Itoa(t.Year())
	}
}

// StageReturns is the per-stage return matrix: one label per stage and, for
// each strategy, the total return it would have earned if restarted from
// scratch in that stage.
type StageReturns struct {
	Granularity Granularity
	Labels      []string
	Returns     map[string][]float64
}

// ComputeStageReturns re-runs all four strategies independently inside each
// stage of the window. No cash pile, units, or peak state carries across
// stage boundaries; each stage answers "how would this strategy have done
// if restarted here". Stages with no data in range report a zero return.
// The per-stage simulations are independent and run on a worker pool.
func ComputeStageReturns(series types.PriceSeries, cfg Config, g Granularity) StageReturns {
	cfg = cfg.Normalized()
	if !g.Valid() {
		g = DefaultGranularity
	}
	stages := BuildStages(cfg.Start, cfg.End, g)

	out := StageReturns{
		Granularity: g,
		Labels:      make([]string, len(stages)),
		Returns:     make(map[string][]float64, 4),
	}
	for _, name := range StrategyNames() {
		out.Returns[name] = make([]float64, len(stages))
	}
	if len(stages) == 0 {
		return out
	}

	pool := NewWorkerPool(0, len(stages))
	pool.Start()

	go func() {
		for i, stage := range stages {
			stageCfg := cfg
			stageCfg.Start = stage.Start
			stageCfg.End = stage.End
			pool.SubmitJob(SimulationJob{
				ID:     strconv.Itoa(i),
				Series: series,
				Config: stageCfg,
			})
		}
		pool.Stop()
	}()

	for res := range pool.GetResults() {
		i, err := strconv.Atoi(res.ID)
		if err != nil || i < 0 || i >= len(stages) {
			continue
		}
		for _, r := range res.Results {
			m := ComputeMetrics(r.Timeline)
			if m.HasData {
				out.Returns[r.Strategy][i] = m.TotalReturn
			}
		}
	}

	for i, stage := range stages {
		out.Labels[i] = stage.Label
	}
	return out
}
