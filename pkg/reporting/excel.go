package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// DefaultExcelReporter implements Excel workbook output.
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter.
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// ExcelStyles holds the workbook's formatting styles.
type ExcelStyles struct {
	HeaderStyle   int
	CurrencyStyle int
	PercentStyle  int
	BaseStyle     int
}

// WriteReportXLSX writes the full report as a workbook: a summary sheet,
// one timeline sheet per strategy, and the stage return matrix.
func (r *DefaultExcelReporter) WriteReportXLSX(report *BacktestReport, path string) error {
	// Ensure directory exists before creating file
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const stagesSheet = "Stage Returns"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}

	for _, s := range report.Strategies {
		if _, err := fx.NewSheet(s.Name); err != nil {
			return err
		}
		if err := r.writeTimelineSheet(fx, s.Name, s, styles); err != nil {
			return err
		}
	}

	if _, err := fx.NewSheet(stagesSheet); err != nil {
		return err
	}
	if err := r.writeStagesSheet(fx, stagesSheet, report, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7, // $ currency
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10, // 0.00%
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	return styles, err
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report *BacktestReport, styles ExcelStyles) error {
	headers := []string{"Strategy", "Cash In", "End Value", "PnL", "Total Return", "CAGR", "Volatility", "Sharpe", "Max Drawdown"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for row, s := range report.Strategies {
		m := s.Metrics
		values := []interface{}{s.Name, m.CashIn, m.EndValue, m.PnL, m.TotalReturn, m.CAGR, m.AnnualizedVolatility, m.Sharpe, m.MaxDrawdown}
		if !m.HasData {
			values = []interface{}{s.Name, "no data", "", "", "", "", "", "", ""}
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			fx.SetCellValue(sheet, cell, v)
			switch col {
			case 1, 2, 3:
				fx.SetCellStyle(sheet, cell, cell, styles.CurrencyStyle)
			case 4, 5, 6, 8:
				fx.SetCellStyle(sheet, cell, cell, styles.PercentStyle)
			case 7:
				fx.SetCellStyle(sheet, cell, cell, styles.BaseStyle)
			}
		}
	}

	return fx.SetColWidth(sheet, "A", "I", 14)
}

func (r *DefaultExcelReporter) writeTimelineSheet(fx *excelize.File, sheet string, s StrategyReport, styles ExcelStyles) error {
	headers := []string{"Date", "Price", "Cash In", "Units", "Cash Pile", "Value", "Moving Average", "Drawdown"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for row, e := range s.Timeline {
		cells := []interface{}{
			e.Date.Format("2006-01-02"), e.Price, e.CashIn, e.Units, e.CashPile, e.Value,
		}
		if math.IsNaN(e.MovingAverage) {
			cells = append(cells, "")
		} else {
			cells = append(cells, e.MovingAverage)
		}
		if row < len(s.Drawdown) {
			cells = append(cells, s.Drawdown[row].Value)
		} else {
			cells = append(cells, "")
		}
		for col, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			fx.SetCellValue(sheet, cell, v)
		}
	}

	return fx.SetColWidth(sheet, "A", "H", 13)
}

func (r *DefaultExcelReporter) writeStagesSheet(fx *excelize.File, sheet string, report *BacktestReport, styles ExcelStyles) error {
	names := stageStrategyNames(report)
	fx.SetCellValue(sheet, "A1", "Stage")
	fx.SetCellStyle(sheet, "A1", "A1", styles.HeaderStyle)
	for col, name := range names {
		cell, _ := excelize.CoordinatesToCellName(col+2, 1)
		fx.SetCellValue(sheet, cell, name)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for row, label := range report.Stages.Labels {
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		fx.SetCellValue(sheet, cell, label)
		for col, name := range names {
			cell, _ := excelize.CoordinatesToCellName(col+2, row+2)
			fx.SetCellValue(sheet, cell, report.Stages.Returns[name][row])
			fx.SetCellStyle(sheet, cell, cell, styles.PercentStyle)
		}
	}

	return fx.SetColWidth(sheet, "A", "E", 12)
}
