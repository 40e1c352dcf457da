// Package artifacts lays out the on-disk results tree: one directory per
// optimization run holding the optimized HTML and its report, plus batch
// summaries and a top-level index.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultBaseDir = "lco-results"
	RunsDir        = "runs"
	BatchesDir     = "batches"

	OptimizedHTMLName = "optimized.html"
	ReportName        = "report.yaml"
	SummaryName       = "summary.yaml"
)

// Manager handles storage of optimization artifacts under a base directory.
type Manager struct {
	baseDir string
}

// NewManager creates a new Manager and ensures the results tree exists.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(filepath.Join(baseDir, RunsDir), 0750); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(baseDir, BatchesDir), 0750); err != nil {
		return nil, fmt.Errorf("failed to create batches directory: %w", err)
	}
	return &Manager{baseDir: baseDir}, nil
}

// BaseDir returns the root of the results tree.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// RunDir returns the directory for a run ID.
// Example: lco-results/runs/example_com_post-a1b2c3d4e5f6/
func (m *Manager) RunDir(runID string) string {
	return filepath.Join(m.baseDir, RunsDir, runID)
}

// WriteRun stores a run's optimized HTML and report, returning the run
// directory. Reruns of the same input overwrite in place.
func (m *Manager) WriteRun(runID string, optimizedHTML, reportYAML []byte) (string, error) {
	runDir := m.RunDir(runID)
	if err := os.MkdirAll(runDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	htmlPath := filepath.Join(runDir, OptimizedHTMLName)
	if err := os.WriteFile(htmlPath, optimizedHTML, 0600); err != nil {
		return "", fmt.Errorf("failed to write optimized HTML: %w", err)
	}

	reportPath := filepath.Join(runDir, ReportName)
	if err := os.WriteFile(reportPath, reportYAML, 0600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return runDir, nil
}

// BatchDir returns the directory for a batch ID.
func (m *Manager) BatchDir(batchID string) string {
	return filepath.Join(m.baseDir, BatchesDir, batchID)
}

// WriteBatchSummary stores a batch summary, returning its path.
func (m *Manager) WriteBatchSummary(batchID string, summaryYAML []byte) (string, error) {
	batchDir := m.BatchDir(batchID)
	if err := os.MkdirAll(batchDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create batch directory: %w", err)
	}

	summaryPath := filepath.Join(batchDir, SummaryName)
	if err := os.WriteFile(summaryPath, summaryYAML, 0600); err != nil {
		return "", fmt.Errorf("failed to write batch summary: %w", err)
	}

	return summaryPath, nil
}

// IndexPath returns the path of the batch index at the results root.
func (m *Manager) IndexPath() string {
	return filepath.Join(m.baseDir, "index.yaml")
}
