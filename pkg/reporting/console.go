package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultConsoleReporter renders the report as terminal tables.
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter.
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputReport prints the strategy comparison and the per-stage return
// matrix. Strategies whose window held no data render as placeholders
// instead of zero returns.
func (r *DefaultConsoleReporter) OutputReport(report *BacktestReport) {
	r.printComparison(report)
	r.printStageReturns(report)
}

func (r *DefaultConsoleReporter) printComparison(report *BacktestReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("📊 STRATEGY COMPARISON")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{
		"Strategy", "Cash In", "End Value", "PnL", "Total Return", "CAGR", "Volatility", "Sharpe", "Max DD",
	})

	for _, s := range report.Strategies {
		m := s.Metrics
		if !m.HasData {
			t.AppendRow(table.Row{s.Name, "-", "-", "-", "no data", "-", "-", "-", "-"})
			continue
		}
		t.AppendRow(table.Row{
			s.Name,
			fmt.Sprintf("$%.2f", m.CashIn),
			fmt.Sprintf("$%.2f", m.EndValue),
			fmt.Sprintf("$%.2f", m.PnL),
			fmt.Sprintf("%.2f%%", m.TotalReturn*100),
			fmt.Sprintf("%.2f%%", m.CAGR*100),
			fmt.Sprintf("%.2f%%", m.AnnualizedVolatility*100),
			fmt.Sprintf("%.2f", m.Sharpe),
			fmt.Sprintf("%.2f%%", m.MaxDrawdown*100),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 10, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

func (r *DefaultConsoleReporter) printStageReturns(report *BacktestReport) {
	if len(report.Stages.Labels) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("📅 STAGE RETURNS (%s)", report.Stages.Granularity))
	t.SetStyle(table.StyleRounded)

	header := table.Row{"Stage"}
	names := stageStrategyNames(report)
	for _, name := range names {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for i, label := range report.Stages.Labels {
		row := table.Row{label}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%.2f%%", report.Stages.Returns[name][i]*100))
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Println()
}

// stageStrategyNames keeps the stage table's columns in report order.
func stageStrategyNames(report *BacktestReport) []string {
	names := make([]string, 0, len(report.Strategies))
	for _, s := range report.Strategies {
		if _, ok := report.Stages.Returns[s.Name]; ok {
			names = append(names, s.Name)
		}
	}
	return names
}
