package constants

import "strings"

// Unit is the canonical measurement unit for a budget line item.
type Unit string

// Stable values (written verbatim to the UNIDAD column).
const (
	UnitUD  Unit = "UD"
	UnitUDS Unit = "UDS"
	UnitM   Unit = "M"
	UnitM2  Unit = "M2"
	UnitM3  Unit = "M3"
	UnitML  Unit = "ML"
	UnitKG  Unit = "KG"
	UnitL   Unit = "L"
)

// DefaultUnit is assigned when a budget row has no matching
// measurements block to take its unit from.
const DefaultUnit = UnitUD

var allUnits = []Unit{
	UnitUD,
	UnitUDS,
	UnitM,
	UnitM2,
	UnitM3,
	UnitML,
	UnitKG,
	UnitL,
}

func AsStringSlice() []string {
	result := make([]string, len(allUnits))
	for i, u := range allUnits {
		result[i] = string(u)
	}
	return result
}

// Canonicalize maps a raw unit token from document text to its canonical
// upper-case form. The boolean reports whether the token is in the vocabulary.
func Canonicalize(input string) (Unit, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return DefaultUnit, false
	}
	for _, u := range allUnits {
		if normalized == string(u) {
			return u, true
		}
	}
	return Unit(normalized), false
}
