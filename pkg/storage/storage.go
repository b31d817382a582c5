// Package storage persists raw page markup and rendered audit reports.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/amosWeiskopf/onpage/internal/models"
	"github.com/amosWeiskopf/onpage/pkg/utils"
)

// Store writes one markup file and one report file per URL host.
// Re-running for the same host overwrites the previous files.
type Store struct {
	indexDir  string
	reportDir string
	logger    *zap.Logger
}

// Saved lists the files a Save call wrote.
type Saved struct {
	HTMLPath   string
	ReportPath string
}

// New creates a Store writing markup under indexDir and reports under reportDir.
func New(indexDir, reportDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{indexDir: indexDir, reportDir: reportDir, logger: logger}
}

// Save writes markup to <indexDir>/<stem>.html when it is non-empty, and
// report to <reportDir>/<stem>.txt when rec carries no error. A failure
// writing one file does not prevent writing the other.
func (s *Store) Save(rec models.SeoRecord, markup, report string) (Saved, error) {
	var (
		saved Saved
		errs  error
	)
	stem := utils.FilenameStem(rec.URL)

	if !rec.Failed() {
		path, err := s.write(s.reportDir, stem+".txt", report)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("save report: %w", err))
		} else {
			saved.ReportPath = path
		}
	}

	if markup != "" {
		path, err := s.write(s.indexDir, stem+".html", markup)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("save html: %w", err))
		} else {
			saved.HTMLPath = path
		}
	}

	return saved, errs
}

func (s *Store) write(dir, name, content string) (string, error) {
	if err := ensureDir(dir, s.logger); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug("File written", zap.String("path", path), zap.Int("bytes", len(content)))
	return path, nil
}

// ensureDir creates dir when it does not exist yet.
func ensureDir(dir string, logger *zap.Logger) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	logger.Info("Directory created", zap.String("dir", dir))
	return nil
}

// EnsureDir creates dir on demand, logging when it had to be created.
func EnsureDir(dir string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ensureDir(dir, logger)
}
