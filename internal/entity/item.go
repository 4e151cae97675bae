package entity

// ItemMetadata is one descriptive record from the measurements region:
// the first pass of the extraction builds a code → ItemMetadata mapping.
type ItemMetadata struct {
	Code        string `json:"codigo"`
	Description string `json:"descripcion"`
	Unit        string `json:"unidad"`
}

// BudgetRow is one raw numeric row from the budget-table region, before
// reconciliation. Numeric fields keep their locale formatting ("1.234,56")
// until the reconciler converts them.
type BudgetRow struct {
	Code             string `json:"codigo"`
	ShortDescription string `json:"descripcion_corta"`
	RawQuantity      string `json:"cantidad"`
	RawUnitPrice     string `json:"precio_unitario"`
	RawTotal         string `json:"importe_total"`
}

// LineItem is a fully reconciled budget line: the row's numbers joined with
// the measurements metadata for its code (or the in-row fallback).
type LineItem struct {
	Code          string  `json:"codigo"`
	Description   string  `json:"descripcion"`
	Unit          string  `json:"unidad"`
	Quantity      float64 `json:"cantidad"`
	UnitPrice     float64 `json:"precio_unitario"`
	Total         float64 `json:"importe_total"`
	ComputedTotal float64 `json:"importe_calculado"`
}

// FullDescription is the DESCRIPCIÓN_COMPLETA column value: the item code
// followed by its description.
func (it LineItem) FullDescription() string {
	if it.Description == "" {
		return it.Code
	}
	return it.Code + " " + it.Description
}
