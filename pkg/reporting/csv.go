package reporting

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultCSVReporter implements CSV file output.
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter.
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteTimelinesCSV writes one timeline CSV per strategy into dir.
func (r *DefaultCSVReporter) WriteTimelinesCSV(report *BacktestReport, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for _, s := range report.Strategies {
		path := filepath.Join(dir, fmt.Sprintf("timeline_%s.csv", slugify(s.Name)))
		if err := writeTimelineCSV(s, path); err != nil {
			return err
		}
	}
	return nil
}

func writeTimelineCSV(s StrategyReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Date", "Price", "Cash_In", "Units", "Cash_Pile", "Value", "Moving_Average", "Drawdown",
	}); err != nil {
		return err
	}

	for i, e := range s.Timeline {
		ma := ""
		if !math.IsNaN(e.MovingAverage) {
			ma = strconv.FormatFloat(e.MovingAverage, 'f', 6, 64)
		}
		dd := ""
		if i < len(s.Drawdown) {
			dd = strconv.FormatFloat(s.Drawdown[i].Value, 'f', 6, 64)
		}
		record := []string{
			e.Date.Format("2006-01-02"),
			strconv.FormatFloat(e.Price, 'f', 6, 64),
			strconv.FormatFloat(e.CashIn, 'f', 2, 64),
			strconv.FormatFloat(e.Units, 'f', 8, 64),
			strconv.FormatFloat(e.CashPile, 'f', 2, 64),
			strconv.FormatFloat(e.Value, 'f', 2, 64),
			ma,
			dd,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteStageReturnsCSV writes the stage return matrix: one row per stage,
// one column per strategy.
func (r *DefaultCSVReporter) WriteStageReturnsCSV(report *BacktestReport, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	names := stageStrategyNames(report)
	if err := w.Write(append([]string{"Stage"}, names...)); err != nil {
		return err
	}

	for i, label := range report.Stages.Labels {
		record := []string{label}
		for _, name := range names {
			record = append(record, strconv.FormatFloat(report.Stages.Returns[name][i], 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
