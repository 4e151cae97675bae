// Package export renders the pipeline results into the two output
// artifacts: the XLSX workbook and the JSON analysis document. Both are
// built fully in memory before anything touches disk, so a failed run
// never leaves a partial file behind.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
)

const defaultSheet = "Sheet1"

// Service produces the output artifacts for one run.
type Service struct {
	cfg    common.OutputConfig
	logger *slog.Logger
}

func NewService(cfg common.OutputConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

// WorkbookBytes renders items into an XLSX workbook with two sheets: the
// budget table and the full-description listing. Quantity, unit price and
// total are written as numeric cells.
func (s *Service) WorkbookBytes(items []entity.LineItem) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	for _, sheet := range []string{s.cfg.BudgetSheet, s.cfg.DetailSheet} {
		if index, _ := f.GetSheetIndex(sheet); index == -1 {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}
	}
	if s.cfg.BudgetSheet != defaultSheet && s.cfg.DetailSheet != defaultSheet {
		_ = f.DeleteSheet(defaultSheet)
	}
	if index, err := f.GetSheetIndex(s.cfg.BudgetSheet); err == nil {
		f.SetActiveSheet(index)
	}

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	budgetHeaders := []string{"CÓDIGO", "DESCRIPCIÓN", "UNIDAD", "CANTIDAD", "PRECIO UNITARIO", "IMPORTE TOTAL"}
	for i, h := range budgetHeaders {
		write(s.cfg.BudgetSheet, i+1, 1, h)
	}
	detailHeaders := []string{"CÓDIGO", "DESCRIPCIÓN_COMPLETA", "UNIDAD"}
	for i, h := range detailHeaders {
		write(s.cfg.DetailSheet, i+1, 1, h)
	}

	for i, it := range items {
		row := i + 2

		write(s.cfg.BudgetSheet, 1, row, it.Code)
		write(s.cfg.BudgetSheet, 2, row, it.Description)
		write(s.cfg.BudgetSheet, 3, row, it.Unit)
		write(s.cfg.BudgetSheet, 4, row, it.Quantity)
		write(s.cfg.BudgetSheet, 5, row, it.UnitPrice)
		write(s.cfg.BudgetSheet, 6, row, it.Total)

		write(s.cfg.DetailSheet, 1, row, it.Code)
		write(s.cfg.DetailSheet, 2, row, it.FullDescription())
		write(s.cfg.DetailSheet, 3, row, it.Unit)
	}

	_ = f.SetColWidth(s.cfg.BudgetSheet, "A", "A", 12) // code
	_ = f.SetColWidth(s.cfg.BudgetSheet, "B", "B", 48) // description
	_ = f.SetColWidth(s.cfg.BudgetSheet, "C", "C", 10) // unit
	_ = f.SetColWidth(s.cfg.BudgetSheet, "D", "F", 16) // amounts
	_ = f.SetColWidth(s.cfg.DetailSheet, "A", "A", 12)
	_ = f.SetColWidth(s.cfg.DetailSheet, "B", "B", 70)
	_ = f.SetColWidth(s.cfg.DetailSheet, "C", "C", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteWorkbook renders items and persists the workbook at path in one
// atomic step from the pipeline's perspective.
func (s *Service) WriteWorkbook(path string, items []entity.LineItem) error {
	b, err := s.WorkbookBytes(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write workbook %q: %w", path, err)
	}
	return nil
}
