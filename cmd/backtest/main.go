package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantbench/invest-backtest/internal/backtest"
	"github.com/quantbench/invest-backtest/internal/config"
	"github.com/quantbench/invest-backtest/internal/logger"
	"github.com/quantbench/invest-backtest/internal/monitoring"
	"github.com/quantbench/invest-backtest/pkg/data"
	"github.com/quantbench/invest-backtest/pkg/reporting"
)

const (
	AppName    = "Invest Backtest"
	AppVersion = "1.2.0"
)

func main() {
	flags := NewFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	cfg, err := loadConfiguration(flags)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if *flags.MetricsAddr != "" {
		serveMetrics(*flags.MetricsAddr)
	}

	runLog, err := logger.NewRunLogger("logs", cfg.DataFile)
	if err != nil {
		log.Fatalf("❌ Failed to open run log: %v", err)
	}
	defer runLog.Close()

	// Load and validate the price series
	provider := data.NewCSVProvider()
	series, err := provider.LoadSeries(cfg.DataFile)
	if err != nil {
		runLog.LogError("load price data", err)
		log.Fatalf("❌ Failed to load price data: %v", err)
	}
	if err := data.ValidateSeries(series); err != nil {
		runLog.LogError("validate price series", err)
		log.Fatalf("❌ Invalid price series: %v", err)
	}
	monitoring.SetSeriesSamples(len(series))
	monitoring.RecordDroppedRecords(provider.DroppedRecords())
	log.Printf("📈 Loaded %d price samples (%d malformed rows dropped)", len(series), provider.DroppedRecords())
	if len(series) > 0 {
		runLog.LogSeriesLoaded(len(series), provider.DroppedRecords(), series[0].Date, series.LastDate())
	}

	btCfg := cfg.Backtest()
	granularity := backtest.Granularity(cfg.Granularity)

	// Full-window simulations plus the per-stage return matrix
	started := time.Now()
	results := backtest.RunAll(series, btCfg)
	stages := backtest.ComputeStageReturns(series, btCfg, granularity)
	monitoring.ObserveRunDuration(time.Since(started).Seconds())
	for _, r := range results {
		monitoring.RecordSimulation(r.Strategy)
		runLog.LogStrategyResult(r.Strategy, r.Summary.CashIn, r.Summary.EndValue, r.Summary.EndValue-r.Summary.CashIn)
	}
	monitoring.RecordStageJobs(string(granularity), len(stages.Labels))
	runLog.LogRunCompletion(len(results), len(stages.Labels), time.Since(started))

	report := reporting.NewBacktestReport(results, stages, btCfg)
	reporter := reporting.NewDefaultReporter()

	reporter.OutputReport(report)

	if *flags.ConsoleOnly {
		return
	}

	outDir := cfg.OutputDir
	if *flags.OutputDir != "" {
		outDir = *flags.OutputDir
	}
	outDir = reporting.NewDefaultPathManager().GetDefaultOutputDir(outDir, cfg.DataFile)

	if err := reporter.WriteTimelinesCSV(report, outDir); err != nil {
		log.Fatalf("❌ Failed to write timeline CSVs: %v", err)
	}
	if err := reporter.WriteStageReturnsCSV(report, filepath.Join(outDir, "stage_returns.csv")); err != nil {
		log.Fatalf("❌ Failed to write stage returns CSV: %v", err)
	}
	if err := reporter.WriteReportXLSX(report, filepath.Join(outDir, "report.xlsx")); err != nil {
		log.Fatalf("❌ Failed to write Excel report: %v", err)
	}
	if err := reporter.WriteReportJSON(report, filepath.Join(outDir, "report.json")); err != nil {
		log.Fatalf("❌ Failed to write JSON report: %v", err)
	}

	log.Printf("✅ Reports written to %s", outDir)
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Recurring-Investment Strategy Backtesting\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))
	PrintUsageExamples()
	flag.PrintDefaults()
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// loadConfiguration merges a config file (when given) with flag overrides.
// Flags win; anything left unset falls back to the documented defaults.
func loadConfiguration(flags *Flags) (*config.Config, error) {
	cfg := config.Default()
	if *flags.ConfigFile != "" {
		loaded, err := config.Load(*flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *flags.DataFile != "" {
		cfg.DataFile = *flags.DataFile
	}
	if *flags.Start != "" {
		cfg.Start = *flags.Start
	}
	if *flags.End != "" {
		cfg.End = *flags.End
	}
	if *flags.Amount != 0 {
		cfg.Amount = *flags.Amount
	}
	if *flags.Frequency != "" {
		cfg.Frequency = strings.ToLower(*flags.Frequency)
	}
	if *flags.DipThreshold != 0 {
		cfg.DipThreshold = *flags.DipThreshold
	}
	if *flags.MAWindow != 0 {
		cfg.MAWindow = *flags.MAWindow
	}
	if *flags.Granularity != "" {
		cfg.Granularity = strings.ToLower(*flags.Granularity)
	}
	if *flags.OutputDir != "" {
		cfg.OutputDir = *flags.OutputDir
	}

	cfg.Normalize()

	if cfg.DataFile == "" {
		cfg.DataFile = "data/prices.csv"
		log.Printf("⚠️  No data file specified, defaulting to %s", cfg.DataFile)
	}

	return cfg, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	go func() {
		log.Printf("📡 Serving Prometheus metrics on %s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
}
