package reporting

import (
	"time"

	"github.com/quantbench/invest-backtest/internal/backtest"
	"github.com/quantbench/invest-backtest/pkg/types"
)

// Package reporting renders backtest results for consumption outside the
// core: console tables, CSV, Excel and JSON documents.

// BacktestReport is the complete output of one run: the four strategy
// results with their metrics, plus the per-stage return matrix.
type BacktestReport struct {
	GeneratedAt time.Time
	Start       time.Time
	End         time.Time
	Amount      float64
	Frequency   string
	Strategies  []StrategyReport
	Stages      backtest.StageReturns
}

// StrategyReport bundles one strategy's full-window products.
type StrategyReport struct {
	Name     string
	Summary  types.Summary
	Metrics  backtest.Metrics
	Timeline types.Timeline
	Drawdown []backtest.DrawdownPoint
}

// NewBacktestReport assembles the report from engine outputs, computing
// metrics and drawdown curves per strategy.
func NewBacktestReport(results []backtest.Result, stages backtest.StageReturns, cfg backtest.Config) *BacktestReport {
	report := &BacktestReport{
		GeneratedAt: time.Now(),
		Start:       cfg.Start,
		End:         cfg.End,
		Amount:      cfg.Amount,
		Frequency:   string(cfg.Frequency),
		Stages:      stages,
	}
	for _, r := range results {
		report.Strategies = append(report.Strategies, StrategyReport{
			Name:     r.Strategy,
			Summary:  r.Summary,
			Metrics:  backtest.ComputeMetrics(r.Timeline),
			Timeline: r.Timeline,
			Drawdown: backtest.Drawdown(r.Timeline),
		})
	}
	return report
}

// ConsoleReporter defines the interface for console output.
type ConsoleReporter interface {
	OutputReport(report *BacktestReport)
}

// FileReporter defines the interface for file output.
type FileReporter interface {
	WriteTimelinesCSV(report *BacktestReport, dir string) error
	WriteStageReturnsCSV(report *BacktestReport, path string) error
	WriteReportXLSX(report *BacktestReport, path string) error
	WriteReportJSON(report *BacktestReport, path string) error
}

// Reporter combines all reporting interfaces.
type Reporter interface {
	ConsoleReporter
	FileReporter
}
