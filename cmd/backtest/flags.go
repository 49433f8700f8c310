package main

import (
	"flag"
	"fmt"
)

// Flags holds all command line flags for the backtest command.
type Flags struct {
	// Configuration
	ConfigFile *string
	DataFile   *string

	// Simulation window
	Start *string
	End   *string

	// Contribution parameters
	Amount    *float64
	Frequency *string

	// Strategy parameters
	DipThreshold *float64
	MAWindow     *int

	// Stage aggregation
	Granularity *string

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	EnvFile     *string
	MetricsAddr *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewFlags creates and registers all command line flags.
func NewFlags() *Flags {
	return &Flags{
		ConfigFile: flag.String("config", "", "Path to JSON or YAML configuration file"),
		DataFile:   flag.String("data", "", "Path to price CSV (date,price rows)"),

		Start: flag.String("start", "", "Window start date (YYYY-MM-DD, default: first sample)"),
		End:   flag.String("end", "", "Window end date (YYYY-MM-DD, default: last sample)"),

		Amount:    flag.Float64("amount", 0, "Contribution amount per scheduled day"),
		Frequency: flag.String("frequency", "", "Contribution frequency: daily, weekly, monthly"),

		DipThreshold: flag.Float64("dip", 0, "Dip-buy drawdown threshold as a fraction (default 0.20)"),
		MAWindow:     flag.Int("ma-window", 0, "Trend moving-average window in days (default 200)"),

		Granularity: flag.String("granularity", "", "Stage granularity: month, quarter, year (default year)"),

		OutputDir:   flag.String("output", "", "Output directory for CSV/Excel/JSON reports"),
		ConsoleOnly: flag.Bool("console-only", false, "Print tables only, write no report files"),
		EnvFile:     flag.String("env", ".env", "Path to environment file"),
		MetricsAddr: flag.String("metrics-addr", "", "Address to serve Prometheus metrics on (e.g. :9090), empty to disable"),

		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// PrintUsageExamples prints example invocations.
func PrintUsageExamples() {
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Monthly $100 contributions over the whole series")
	fmt.Println("  backtest -data prices.csv -amount 100 -frequency monthly")
	fmt.Println()
	fmt.Println("  # Weekly contributions in a fixed window, quarterly stage matrix")
	fmt.Println("  backtest -data prices.csv -amount 50 -frequency weekly \\")
	fmt.Println("           -start 2020-01-01 -end 2023-12-31 -granularity quarter")
	fmt.Println()
	fmt.Println("  # Everything from a config file, console output only")
	fmt.Println("  backtest -config backtest.yaml -console-only")
	fmt.Println()
}
