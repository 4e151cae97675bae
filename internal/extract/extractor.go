// Package extract implements the two-pass extraction and reconciliation
// pipeline: the measurements pass builds a code → metadata mapping, the
// budget-table pass parses numeric rows and joins them against it, then
// the result is checked for arithmetic consistency and sorted by code.
package extract

import (
	"context"
	"log/slog"

	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
	"github.com/obras-dev/presupuestos/internal/pdftext"
)

// Stats carries the per-run counters a successful run reports.
type Stats struct {
	PagesRead       int
	MetadataRecords int
	Rows            int
	FieldWarnings   int
	Inconsistencies int
}

// Service owns one document pipeline: compiled patterns, number format
// and page windows. It holds no per-run state, so one Service can process
// documents back to back.
type Service struct {
	cfg      common.ExtractionConfig
	patterns *PatternSet
	format   NumberFormat
	logger   *slog.Logger
}

func NewService(cfg common.ExtractionConfig, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	patterns, err := NewPatternSet(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:      cfg,
		patterns: patterns,
		format:   NewNumberFormat(cfg.NumberFormat),
		logger:   logger,
	}, nil
}

// Run executes the pipeline over one document. The measurements pass
// completes before the budget-table pass starts: the reconciler needs the
// whole mapping, not a streaming one. Items come back checked and sorted;
// err is non-nil only for the fatal conditions (stats are still returned
// so the caller can report how far the run got).
func (s *Service) Run(ctx context.Context, doc pdftext.Provider, progress pdftext.ProgressFunc) ([]entity.LineItem, *Stats, error) {
	logger := s.logger
	if runID := common.RunIDFromContext(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}

	stats := &Stats{}

	measText, pages := pdftext.ExtractRange(doc, s.cfg.Measurements, progress, logger)
	stats.PagesRead += pages
	metadata := NewMetadataMapper(s.patterns, logger).Map(pdftext.Normalize(measText))
	stats.MetadataRecords = len(metadata)

	tableText, pages := pdftext.ExtractRange(doc, s.cfg.BudgetTable, progress, logger)
	stats.PagesRead += pages
	items, warnings, err := NewRowReconciler(s.patterns, s.format, logger).Reconcile(pdftext.Normalize(tableText), metadata)
	if err != nil {
		return nil, stats, err
	}
	stats.Rows = len(items)
	stats.FieldWarnings = warnings

	stats.Inconsistencies = CheckConsistency(items, s.cfg.Tolerance, logger)
	SortByCode(items)

	logger.Info("extract.run.ok",
		"pages_read", stats.PagesRead,
		"metadata_records", stats.MetadataRecords,
		"rows", stats.Rows,
		"field_warnings", stats.FieldWarnings,
		"inconsistencies", stats.Inconsistencies)
	return items, stats, nil
}
