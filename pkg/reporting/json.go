package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultJSONReporter implements JSON document output.
type DefaultJSONReporter struct{}

// NewDefaultJSONReporter creates a new JSON reporter.
func NewDefaultJSONReporter() *DefaultJSONReporter {
	return &DefaultJSONReporter{}
}

// jsonReport mirrors BacktestReport with explicit tags and without the raw
// timelines, which the CSV and Excel outputs already carry. NaN moving
// averages are not representable in JSON, so timelines stay out entirely.
type jsonReport struct {
	GeneratedAt string          `json:"generated_at"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Amount      float64         `json:"amount"`
	Frequency   string          `json:"frequency"`
	Strategies  []jsonStrategy  `json:"strategies"`
	Stages      jsonStageReturn `json:"stage_returns"`
}

type jsonStrategy struct {
	Name                 string  `json:"name"`
	HasData              bool    `json:"has_data"`
	CashIn               float64 `json:"cash_in"`
	EndValue             float64 `json:"end_value"`
	PnL                  float64 `json:"pnl"`
	TotalReturn          float64 `json:"total_return"`
	CAGR                 float64 `json:"cagr"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	Sharpe               float64 `json:"sharpe"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	FinalUnits           float64 `json:"final_units"`
	FinalCashPile        float64 `json:"final_cash_pile"`
}

type jsonStageReturn struct {
	Granularity string               `json:"granularity"`
	Labels      []string             `json:"labels"`
	Returns     map[string][]float64 `json:"returns"`
}

// WriteReportJSON writes the report's metrics and stage matrix as an
// indented JSON document.
func (r *DefaultJSONReporter) WriteReportJSON(report *BacktestReport, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	doc := jsonReport{
		GeneratedAt: report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Start:       report.Start.Format("2006-01-02"),
		End:         report.End.Format("2006-01-02"),
		Amount:      report.Amount,
		Frequency:   report.Frequency,
		Stages: jsonStageReturn{
			Granularity: string(report.Stages.Granularity),
			Labels:      report.Stages.Labels,
			Returns:     report.Stages.Returns,
		},
	}

	for _, s := range report.Strategies {
		m := s.Metrics
		js := jsonStrategy{
			Name:                 s.Name,
			HasData:              m.HasData,
			CashIn:               m.CashIn,
			EndValue:             m.EndValue,
			PnL:                  m.PnL,
			TotalReturn:          m.TotalReturn,
			CAGR:                 m.CAGR,
			AnnualizedVolatility: m.AnnualizedVolatility,
			Sharpe:               m.Sharpe,
			MaxDrawdown:          m.MaxDrawdown,
		}
		if n := len(s.Timeline); n > 0 {
			last := s.Timeline[n-1]
			js.FinalUnits = last.Units
			if !math.IsNaN(last.CashPile) {
				js.FinalCashPile = last.CashPile
			}
		}
		doc.Strategies = append(doc.Strategies, js)
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return os.WriteFile(path, payload, 0644)
}
