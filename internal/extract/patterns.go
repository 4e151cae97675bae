package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/obras-dev/presupuestos/internal/common"
)

// PatternSet holds the compiled expressions that recognize line-item
// structures in linearized page text.
//
// Header opens a metadata block: an item code followed by a unit token
// from the configured vocabulary. Row recognizes one budget-table line:
// code, short description, then exactly three locale-numeric tokens
// (quantity, unit price, total) anchored to the line end.
type PatternSet struct {
	Header *regexp.Regexp
	Row    *regexp.Regexp

	headerCode int
	headerUnit int
	rowCode    int
	rowDesc    int
	rowQty     int
	rowPrice   int
	rowTotal   int
}

// NewPatternSet compiles the recognition patterns from cfg. A missing or
// uncompilable pattern is a configuration error: nothing is matched on a
// best-effort basis at this level.
func NewPatternSet(cfg common.ExtractionConfig) (*PatternSet, error) {
	if cfg.Patterns.Code == "" || cfg.Patterns.Number == "" {
		return nil, common.ConfigurationError("patterns.code and patterns.number are both required")
	}
	units := unitAlternation(cfg.Units)
	if units == "" {
		return nil, common.ConfigurationError("units vocabulary is empty")
	}

	header, err := regexp.Compile(`(?i)\b(?P<code>` + cfg.Patterns.Code + `)\s+(?P<unit>` + units + `)\b`)
	if err != nil {
		return nil, common.ConfigurationErrorf("compile header pattern: %v", err)
	}

	num := cfg.Patterns.Number
	row, err := regexp.Compile(
		`(?m)^[ \t]*(?P<code>` + cfg.Patterns.Code + `)[ \t]+(?P<desc>.+)[ \t]+` +
			`(?P<qty>` + num + `)[ \t]+(?P<price>` + num + `)[ \t]+(?P<total>` + num + `)[ \t]*$`)
	if err != nil {
		return nil, common.ConfigurationErrorf("compile row pattern: %v", err)
	}

	return &PatternSet{
		Header:     header,
		Row:        row,
		headerCode: header.SubexpIndex("code"),
		headerUnit: header.SubexpIndex("unit"),
		rowCode:    row.SubexpIndex("code"),
		rowDesc:    row.SubexpIndex("desc"),
		rowQty:     row.SubexpIndex("qty"),
		rowPrice:   row.SubexpIndex("price"),
		rowTotal:   row.SubexpIndex("total"),
	}, nil
}

// unitAlternation builds the unit vocabulary alternation, longest token
// first so "uds" wins over "ud" at the same position.
func unitAlternation(units []string) string {
	toks := make([]string, 0, len(units))
	for _, u := range units {
		u = strings.TrimSpace(u)
		if u != "" {
			toks = append(toks, regexp.QuoteMeta(u))
		}
	}
	sort.SliceStable(toks, func(i, j int) bool { return len(toks[i]) > len(toks[j]) })
	return strings.Join(toks, "|")
}

// groupText slices the capture group out of a FindAllStringSubmatchIndex
// match; an unmatched group yields "".
func groupText(text string, idx []int, group int) string {
	start, end := idx[2*group], idx[2*group+1]
	if start < 0 {
		return ""
	}
	return text[start:end]
}
