package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/obras-dev/presupuestos/internal/common"
)

// NumberFormat converts locale-formatted numeric strings ("1.234,56")
// using explicit separators instead of process-wide locale state.
type NumberFormat struct {
	Thousands string
	Decimal   string
}

// NewNumberFormat builds a NumberFormat from configuration.
func NewNumberFormat(cfg common.NumberFormatConfig) NumberFormat {
	return NumberFormat{Thousands: cfg.Thousands, Decimal: cfg.Decimal}
}

// Parse converts s to a float64. On any failure it returns the 0.0
// sentinel plus a diagnostic error; the caller decides whether to log,
// count, or escalate. Parse itself never aborts an extraction.
func (f NumberFormat) Parse(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	t = strings.ReplaceAll(t, f.Thousands, "")
	t = strings.ReplaceAll(t, f.Decimal, ".")
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot interpret %q as a number", s)
	}
	return v, nil
}
