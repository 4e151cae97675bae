package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obras-dev/presupuestos/internal/common"
)

type fakeDoc struct{ pages []string }

func (f *fakeDoc) NumPages() int { return len(f.pages) }

func (f *fakeDoc) PageText(page int) (string, error) { return f.pages[page-1], nil }

func budgetDoc() *fakeDoc {
	return &fakeDoc{pages: []string{
		"MEDICIONES\n" +
			"10.01.02 m2 Pintura plástica lisa en paramentos\n" +
			"alzado norte 12,50\n" +
			"alzado sur 14,25\n",
		"10.01.01 ud Contactor tetrapolar 4x25A en cuadro general\n" +
			"cuadro general 1,00\n",
		"PRESUPUESTO\n" +
			"10.01.01 Contactor 1,00 45,50 45,50\n" +
			"10.01.02 Pintura 120,00 8,75 1.050,00\n" +
			"9.99 Partida sin ficha 2,00 10,00 20,00\n",
	}}
}

func testService(t *testing.T) *Service {
	t.Helper()
	cfg := testExtractionConfig(t)
	cfg.Measurements = common.PageRange{First: 1, Last: 2}
	cfg.BudgetTable = common.PageRange{First: 3, Last: 3}
	svc, err := NewService(cfg, discardLogger())
	require.NoError(t, err)
	return svc
}

func TestServiceRunRoundTrip(t *testing.T) {
	svc := testService(t)
	ctx := common.WithRunID(context.Background(), "test-run")

	items, stats, err := svc.Run(ctx, budgetDoc(), nil)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// sorted by code: 9.99 precedes the 10.x items
	assert.Equal(t, "9.99", items[0].Code)
	assert.Equal(t, "10.01.01", items[1].Code)
	assert.Equal(t, "10.01.02", items[2].Code)

	// unmapped code keeps its own short description and the default unit
	assert.Equal(t, "Partida sin ficha", items[0].Description)
	assert.Equal(t, "UD", items[0].Unit)

	// mapped codes take description and unit from the measurements pass
	assert.Equal(t, "Contactor tetrapolar 4x25A en cuadro general", items[1].Description)
	assert.Equal(t, "UD", items[1].Unit)
	assert.Equal(t, "Pintura plástica lisa en paramentos", items[2].Description)
	assert.Equal(t, "M2", items[2].Unit)

	assert.InDelta(t, 1050.0, items[2].Total, 1e-9)
	assert.InDelta(t, 1050.0, items[2].ComputedTotal, 1e-9)

	assert.Equal(t, 3, stats.PagesRead)
	assert.Equal(t, 2, stats.MetadataRecords)
	assert.Equal(t, 3, stats.Rows)
	assert.Zero(t, stats.FieldWarnings)
	assert.Zero(t, stats.Inconsistencies)
}

func TestServiceRunCountsInconsistencies(t *testing.T) {
	svc := testService(t)
	doc := budgetDoc()
	doc.pages[2] = "PRESUPUESTO\n10.01.01 Contactor 2,00 45,50 90,00\n"

	items, stats, err := svc.Run(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, 1, stats.Inconsistencies)
	// the divergent row stays in the output with its stated total
	assert.InDelta(t, 90.0, items[0].Total, 1e-9)
	assert.InDelta(t, 91.0, items[0].ComputedTotal, 1e-9)
}

func TestServiceRunEmptyTableAborts(t *testing.T) {
	svc := testService(t)
	doc := budgetDoc()
	doc.pages[2] = "página de índice sin filas"

	items, stats, err := svc.Run(context.Background(), doc, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrEmptyExtraction))
	assert.Nil(t, items)
	// stats still report how far the run got
	assert.Equal(t, 3, stats.PagesRead)
	assert.Equal(t, 2, stats.MetadataRecords)
}

func TestServiceRunReportsProgressForBothPasses(t *testing.T) {
	svc := testService(t)

	var calls int
	_, _, err := svc.Run(context.Background(), budgetDoc(), func(done, total int) { calls++ })
	require.NoError(t, err)
	// two measurement pages plus one table page
	assert.Equal(t, 3, calls)
}

func TestNewServiceRejectsBadPatterns(t *testing.T) {
	cfg := testExtractionConfig(t)
	cfg.Patterns.Code = `(\d+`

	_, err := NewService(cfg, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
}
