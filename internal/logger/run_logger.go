package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunLogger writes a per-run log file next to the report output so a
// backtest run leaves an auditable trail of what it loaded and computed.
type RunLogger struct {
	dataName string
	logFile  *os.File
	logger   *log.Logger
	mu       sync.Mutex
	logPath  string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelRun     LogLevel = "RUN"
)

// NewRunLogger creates a run logger for the given data file, writing
// into logDir (created if missing).
func NewRunLogger(logDir, dataFile string) (*RunLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	base := filepath.Base(dataFile)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	filename := fmt.Sprintf("%s_%s.log", base, time.Now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &RunLogger{
		dataName: base,
		logFile:  file,
		logger:   log.New(file, "", 0),
		logPath:  logPath,
	}

	l.writeSessionHeader()

	return l, nil
}

func (l *RunLogger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
📊 BACKTEST RUN STARTED
================================================================================
Data: %s
Started: %s
================================================================================
`, l.dataName, time.Now().Format("2006-01-02 15:04:05"))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *RunLogger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)

	l.logger.Printf("[%s] [%s] %s", timestamp, level, message)
}

// Info logs an info message
func (l *RunLogger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *RunLogger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *RunLogger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogSeriesLoaded records what the data provider handed to the engine.
func (l *RunLogger) LogSeriesLoaded(samples, dropped int, first, last time.Time) {
	l.Log(LogLevelRun, "Series loaded - Samples: %d, Dropped: %d, Range: %s .. %s",
		samples, dropped, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

// LogStrategyResult records a single strategy's outcome.
func (l *RunLogger) LogStrategyResult(name string, cashIn, endValue, pnl float64) {
	l.Log(LogLevelRun, "%s - Invested: $%.2f, End Value: $%.2f, PnL: $%.2f",
		name, cashIn, endValue, pnl)
}

// LogRunCompletion records the end-to-end duration of a simulation run.
func (l *RunLogger) LogRunCompletion(strategies, stages int, elapsed time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	summary := fmt.Sprintf(`
[%s] [RUN] ==================== RUN COMPLETED ====================
✅ Strategies: %d
📊 Stages: %d
⏱️ Elapsed: %s
==========================================================`,
		timestamp, strategies, stages, elapsed.Round(time.Millisecond))

	l.logger.Println(summary)
}

// LogError logs error with context
func (l *RunLogger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close writes the session footer and closes the log file.
func (l *RunLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		footer := fmt.Sprintf(`
================================================================================
🛑 BACKTEST RUN ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format("2006-01-02 15:04:05"))
		l.logger.Print(footer)

		return l.logFile.Close()
	}
	return nil
}

// GetLogPath returns the current log file path
func (l *RunLogger) GetLogPath() string {
	return l.logPath
}
