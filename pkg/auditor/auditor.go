// Package auditor runs the per-URL SEO audit: fetch, extract, format and
// persist, one URL at a time.
package auditor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/amosWeiskopf/onpage/internal/models"
	"github.com/amosWeiskopf/onpage/pkg/extractor"
	"github.com/amosWeiskopf/onpage/pkg/fetcher"
	"github.com/amosWeiskopf/onpage/pkg/reporter"
	"github.com/amosWeiskopf/onpage/pkg/storage"
)

// Result is the outcome of auditing one URL.
type Result struct {
	Record models.SeoRecord
	Report string
	Saved  storage.Saved
}

// Summary counts the outcomes of a Run.
type Summary struct {
	Audited int
	Failed  int
	Files   int
}

// Auditor wires the pipeline stages together
type Auditor struct {
	fetcher   fetcher.PageFetcher
	extractor *extractor.Extractor
	reporter  *reporter.Reporter
	store     *storage.Store
	logger    *zap.Logger
}

// New creates an Auditor.
func New(f fetcher.PageFetcher, store *storage.Store, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{
		fetcher:   f,
		extractor: extractor.New(),
		reporter:  reporter.New(),
		store:     store,
		logger:    logger,
	}
}

// Audit processes a single URL. Fetch and parse failures are captured in
// the returned record rather than returned as errors; the error result only
// reports persistence failures.
func (a *Auditor) Audit(ctx context.Context, pageURL string) (Result, error) {
	markup, err := a.fetcher.Fetch(ctx, pageURL)

	var rec models.SeoRecord
	if err != nil {
		a.logger.Warn("Fetch failed", zap.String("url", pageURL), zap.Error(err))
		rec = models.FailedRecord(pageURL, fetchErrorMessage(err))
		markup = ""
	} else {
		rec = a.extractor.Extract(pageURL, markup)
	}

	res := Result{Record: rec, Report: a.reporter.Format(rec)}

	saved, err := a.store.Save(rec, markup, res.Report)
	res.Saved = saved
	if saved.ReportPath != "" {
		a.logger.Info("Report saved", zap.String("url", pageURL), zap.String("path", saved.ReportPath))
	}
	if saved.HTMLPath != "" {
		a.logger.Info("HTML saved", zap.String("url", pageURL), zap.String("path", saved.HTMLPath))
	}
	if err != nil {
		return res, fmt.Errorf("persist %s: %w", pageURL, err)
	}
	return res, nil
}

// Run audits urls in order. Each result is handed to emit as soon as it is
// ready. Persistence failures are logged and do not stop the batch; a
// cancelled context stops it before the next URL.
func (a *Auditor) Run(ctx context.Context, urls []string, emit func(Result)) (Summary, error) {
	var sum Summary
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res, err := a.Audit(ctx, u)
		if err != nil {
			a.logger.Error("Failed to save audit output", zap.String("url", u), zap.Error(err))
		}

		sum.Audited++
		if res.Record.Failed() {
			sum.Failed++
		}
		if res.Saved.ReportPath != "" {
			sum.Files++
		}
		if res.Saved.HTMLPath != "" {
			sum.Files++
		}

		if emit != nil {
			emit(res)
		}
	}
	return sum, nil
}

func fetchErrorMessage(err error) string {
	if errors.Is(err, fetcher.ErrInvalidURL) {
		return fmt.Sprintf("Error de formato de URL (posiblemente por codificación incorrecta del archivo urls.txt): %v", err)
	}
	return fmt.Sprintf("Error al descargar la página o tiempo de espera agotado: %v", err)
}
