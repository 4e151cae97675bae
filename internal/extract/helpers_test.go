package extract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/obras-dev/presupuestos/internal/common"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testExtractionConfig(t *testing.T) common.ExtractionConfig {
	t.Helper()
	cfg, err := common.LoadConfig("")
	require.NoError(t, err)
	return cfg.Extraction
}

func testPatternSet(t *testing.T) *PatternSet {
	t.Helper()
	ps, err := NewPatternSet(testExtractionConfig(t))
	require.NoError(t, err)
	return ps
}
