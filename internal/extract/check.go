package extract

import (
	"log/slog"
	"math"

	"github.com/obras-dev/presupuestos/internal/entity"
)

// CheckConsistency recomputes every item's total as round(quantity *
// unitPrice, 2) and counts rows whose stated total diverges beyond
// tolerance. Divergent rows stay in the output; the discrepancy is only
// logged and counted.
func CheckConsistency(items []entity.LineItem, tolerance float64, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	flagged := 0
	for i := range items {
		items[i].ComputedTotal = round2(items[i].Quantity * items[i].UnitPrice)
		diff := math.Abs(items[i].Total - items[i].ComputedTotal)
		if diff > tolerance {
			flagged++
			logger.Warn("extract.check.inconsistent_total",
				"code", items[i].Code,
				"stated", items[i].Total,
				"computed", items[i].ComputedTotal,
				"diff", diff)
		}
	}
	return flagged
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
