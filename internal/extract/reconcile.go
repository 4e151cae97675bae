package extract

import (
	"log/slog"
	"strings"

	"github.com/obras-dev/presupuestos/constants"
	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
)

// RowReconciler runs the second extraction pass: it parses numeric rows
// out of the budget-table region and joins each against the metadata
// mapping by item code.
type RowReconciler struct {
	patterns *PatternSet
	format   NumberFormat
	logger   *slog.Logger
}

func NewRowReconciler(patterns *PatternSet, format NumberFormat, logger *slog.Logger) *RowReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RowReconciler{patterns: patterns, format: format, logger: logger}
}

// Reconcile emits one LineItem per matched row, in text order. Codes
// found in metadata take their description and unit from it; unmatched
// codes keep the row's own short description and the default unit. Zero
// matched rows aborts the run: an empty table means the page range or
// the row pattern is wrong, and writing an empty workbook would hide
// that. The int return counts numeric fields that failed conversion and
// were defaulted to 0.
func (r *RowReconciler) Reconcile(text string, metadata map[string]entity.ItemMetadata) ([]entity.LineItem, int, error) {
	matches := r.patterns.Row.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, 0, common.EmptyExtractionError(
			"zero rows matched in the budget-table region: check the page range and the row pattern")
	}

	conv := fieldConverter{format: r.format, logger: r.logger}
	items := make([]entity.LineItem, 0, len(matches))
	for _, idx := range matches {
		row := entity.BudgetRow{
			Code:             groupText(text, idx, r.patterns.rowCode),
			ShortDescription: strings.TrimSpace(groupText(text, idx, r.patterns.rowDesc)),
			RawQuantity:      groupText(text, idx, r.patterns.rowQty),
			RawUnitPrice:     groupText(text, idx, r.patterns.rowPrice),
			RawTotal:         groupText(text, idx, r.patterns.rowTotal),
		}
		items = append(items, r.merge(row, metadata, &conv))
	}

	r.logger.Info("extract.reconcile.done", "rows", len(items), "field_warnings", conv.warnings)
	return items, conv.warnings, nil
}

func (r *RowReconciler) merge(row entity.BudgetRow, metadata map[string]entity.ItemMetadata, conv *fieldConverter) entity.LineItem {
	item := entity.LineItem{Code: row.Code}
	if meta, ok := metadata[row.Code]; ok {
		item.Description = meta.Description
		item.Unit = meta.Unit
	} else {
		// deliberate lossy fallback, not a failure
		item.Description = row.ShortDescription
		item.Unit = string(constants.DefaultUnit)
		r.logger.Debug("extract.reconcile.fallback", "code", row.Code)
	}
	item.Quantity = conv.parse(row.Code, "cantidad", row.RawQuantity)
	item.UnitPrice = conv.parse(row.Code, "precio_unitario", row.RawUnitPrice)
	item.Total = conv.parse(row.Code, "importe_total", row.RawTotal)
	return item
}

// fieldConverter applies NumberFormat.Parse and turns failures into the
// 0.0 sentinel plus a logged, counted warning. One bad field never aborts
// the extraction.
type fieldConverter struct {
	format   NumberFormat
	logger   *slog.Logger
	warnings int
}

func (c *fieldConverter) parse(code, field, raw string) float64 {
	v, err := c.format.Parse(raw)
	if err != nil {
		c.warnings++
		c.logger.Warn("extract.reconcile.bad_number", "code", code, "field", field, "value", raw)
	}
	return v
}
