package extract

import (
	"log/slog"
	"strings"

	"github.com/obras-dev/presupuestos/constants"
	"github.com/obras-dev/presupuestos/internal/entity"
)

// MetadataMapper runs the first extraction pass: it scans the measurements
// region and builds the code → descriptive-record mapping the reconciler
// joins against.
type MetadataMapper struct {
	patterns *PatternSet
	logger   *slog.Logger
}

func NewMetadataMapper(patterns *PatternSet, logger *slog.Logger) *MetadataMapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataMapper{patterns: patterns, logger: logger}
}

// Map scans text for metadata blocks. A block opens at each code+unit
// header and its body runs to the start of the next header, or to the end
// of text for the last block; the first line of the body is the item
// description. Duplicate codes overwrite earlier entries, so the last
// occurrence in text order wins. Zero matches is not an error: the
// reconciler falls back per row against an empty mapping.
func (m *MetadataMapper) Map(text string) map[string]entity.ItemMetadata {
	records := make(map[string]entity.ItemMetadata)
	matches := m.patterns.Header.FindAllStringSubmatchIndex(text, -1)
	for i, idx := range matches {
		code := groupText(text, idx, m.patterns.headerCode)
		rawUnit := groupText(text, idx, m.patterns.headerUnit)

		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		desc := firstLine(text[idx[1]:bodyEnd])

		unit, known := constants.Canonicalize(rawUnit)
		if !known {
			m.logger.Debug("extract.metadata.unit_outside_vocabulary", "code", code, "unit", rawUnit)
		}

		if prev, dup := records[code]; dup {
			m.logger.Warn("extract.metadata.duplicate_code",
				"code", code, "kept", "last", "previous_description", prev.Description)
		}
		records[code] = entity.ItemMetadata{
			Code:        code,
			Description: desc,
			Unit:        string(unit),
		}
	}
	m.logger.Info("extract.metadata.done", "records", len(records), "blocks", len(matches))
	return records
}

// firstLine returns the first non-blank-prefixed line of a block body,
// trimmed. Descriptions may sit on the header line or on the next one.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
