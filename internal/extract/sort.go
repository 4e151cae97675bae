package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/obras-dev/presupuestos/internal/entity"
)

const codeSegments = 3

// SortByCode orders items ascending by item code, comparing each
// dot-separated segment as an integer, so "9.9.9" precedes "10.1.1".
// Missing or non-numeric segments compare as 0. The sort is stable, so
// items with equal keys keep their text order.
func SortByCode(items []entity.LineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := codeKey(items[i].Code), codeKey(items[j].Code)
		for s := 0; s < codeSegments; s++ {
			if a[s] != b[s] {
				return a[s] < b[s]
			}
		}
		return false
	})
}

func codeKey(code string) [codeSegments]int {
	var key [codeSegments]int
	parts := strings.Split(code, ".")
	for i := 0; i < codeSegments && i < len(parts); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			continue
		}
		key[i] = n
	}
	return key
}
