package data

import (
	"fmt"

	"github.com/quantbench/invest-backtest/pkg/types"
)

// DataProvider loads a historical price series from some source. The
// provider owns format concerns: the core only ever sees an ordered,
// deduplicated series of (date, positive price) samples.
type DataProvider interface {
	// LoadSeries loads and cleans the series from the specified source.
	LoadSeries(source string) (types.PriceSeries, error)

	// GetName returns the name of the data provider.
	GetName() string
}

// CSVColumnMapping defines the column positions for a price CSV format.
type CSVColumnMapping struct {
	DateCol    int
	PriceCol   int
	MinColumns int
	DateFormat string
}

// DefaultCSVFormat reads "date,price" rows with ISO dates.
var DefaultCSVFormat = CSVColumnMapping{
	DateCol:    0,
	PriceCol:   1,
	MinColumns: 2,
	DateFormat: "2006-01-02",
}

// ValidateSeries checks the invariants a built series must satisfy:
// ascending unique dates and strictly positive prices.
func ValidateSeries(series types.PriceSeries) error {
	for i, p := range series {
		if p.Price <= 0 {
			return fmt.Errorf("non-positive price %.6f at index %d", p.Price, i)
		}
		if i > 0 && !series[i-1].Date.Before(p.Date) {
			return fmt.Errorf("series not strictly ascending at index %d: %s after %s",
				i, p.Date.Format("2006-01-02"), series[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
