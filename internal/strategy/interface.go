package strategy

// Trigger decides, one trading day at a time, whether the cash pile a
// simulation has accumulated should be deployed into units. Implementations
// carry their own side-state (running peak, moving average) and are
// single-use: create a fresh trigger per simulation run.
type Trigger interface {
	// Observe feeds one day's price in series order. inWindow marks days
	// inside the active backtest range; triggers tracking window-local
	// state ignore days outside it, while indicator warm-up consumes
	// every day from the start of the series.
	Observe(price float64, inWindow bool)

	// Deploy reports whether the current cash pile should convert to
	// units at the most recently observed price.
	Deploy() bool

	// Indicator returns the companion value charted alongside the price
	// (the moving average for trend following), or NaN when the trigger
	// has none.
	Indicator() float64

	// GetName returns the name of the trigger variant.
	GetName() string
}
