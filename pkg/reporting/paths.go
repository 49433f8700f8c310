package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPathManager implements output path management.
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager.
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the per-run output directory, keyed by the
// data file's base name and the run date.
func (p *DefaultPathManager) GetDefaultOutputDir(root, dataFile string) string {
	name := strings.TrimSuffix(filepath.Base(dataFile), filepath.Ext(dataFile))
	if name == "" || name == "." {
		name = "series"
	}
	if root == "" {
		root = "results"
	}
	return filepath.Join(root, fmt.Sprintf("%s_%s", name, time.Now().Format("2006-01-02")))
}

// EnsureDirectoryExists creates the directory for a path if needed.
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// DefaultReporter bundles the concrete reporters behind the Reporter
// interface.
type DefaultReporter struct {
	*DefaultConsoleReporter
	*DefaultCSVReporter
	*DefaultExcelReporter
	*DefaultJSONReporter
}

// NewDefaultReporter creates the standard console+file reporter.
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		DefaultConsoleReporter: NewDefaultConsoleReporter(),
		DefaultCSVReporter:     NewDefaultCSVReporter(),
		DefaultExcelReporter:   NewDefaultExcelReporter(),
		DefaultJSONReporter:    NewDefaultJSONReporter(),
	}
}
