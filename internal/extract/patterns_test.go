package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obras-dev/presupuestos/internal/common"
)

func TestNewPatternSetDefaults(t *testing.T) {
	ps := testPatternSet(t)
	assert.NotNil(t, ps.Header)
	assert.NotNil(t, ps.Row)
}

func TestNewPatternSetConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*common.ExtractionConfig)
	}{
		{"missing code pattern", func(c *common.ExtractionConfig) { c.Patterns.Code = "" }},
		{"missing number pattern", func(c *common.ExtractionConfig) { c.Patterns.Number = "" }},
		{"empty units", func(c *common.ExtractionConfig) { c.Units = []string{" ", ""} }},
		{"unbalanced code pattern", func(c *common.ExtractionConfig) { c.Patterns.Code = `(\d+` }},
		{"unbalanced number pattern", func(c *common.ExtractionConfig) { c.Patterns.Number = `[0-9` }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testExtractionConfig(t)
			tt.mutate(&cfg)
			_, err := NewPatternSet(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrConfiguration))
		})
	}
}

func TestHeaderPattern(t *testing.T) {
	ps := testPatternSet(t)

	tests := []struct {
		name     string
		text     string
		wantCode string
		wantUnit string
	}{
		{"plain", "10.01.01 ud Cableado", "10.01.01", "ud"},
		{"longest unit token wins", "2.01 uds Tornillería", "2.01", "uds"},
		{"bare metre not eaten by m2", "2.02 m2 Solado", "2.02", "m2"},
		{"case-insensitive unit", "2.03 M3 Hormigón", "2.03", "M3"},
		{"unit on next line", "2.04\nkg Acero corrugado", "2.04", "kg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ps.Header.FindStringSubmatch(tt.text)
			require.NotNil(t, m)
			assert.Equal(t, tt.wantCode, m[ps.headerCode])
			assert.Equal(t, tt.wantUnit, m[ps.headerUnit])
		})
	}

	assert.Nil(t, ps.Header.FindStringSubmatch("10.01.01 xx Sin unidad"))
	assert.Nil(t, ps.Header.FindStringSubmatch("sin código ud"))
}

func TestRowPattern(t *testing.T) {
	ps := testPatternSet(t)

	tests := []struct {
		name     string
		line     string
		wantCode string
		wantDesc string
		wantNums [3]string
	}{
		{
			"plain row",
			"1.01 Cable de cobre 10,00 5,50 55,00",
			"1.01", "Cable de cobre", [3]string{"10,00", "5,50", "55,00"},
		},
		{
			"numbers inside description",
			"1.02 Tubo 3x2,5 especial 2,00 3,00 6,00",
			"1.02", "Tubo 3x2,5 especial", [3]string{"2,00", "3,00", "6,00"},
		},
		{
			"description keeps extra numeric tokens",
			"1.03 Zanja 4,00 1,00 2,00 8,00",
			"1.03", "Zanja 4,00", [3]string{"1,00", "2,00", "8,00"},
		},
		{
			"thousands separator",
			"10.01.02 Pintura plástica 120,00 8,75 1.050,00",
			"10.01.02", "Pintura plástica", [3]string{"120,00", "8,75", "1.050,00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ps.Row.FindStringSubmatch(tt.line)
			require.NotNil(t, m)
			assert.Equal(t, tt.wantCode, m[ps.rowCode])
			assert.Equal(t, tt.wantDesc, m[ps.rowDesc])
			assert.Equal(t, tt.wantNums[0], m[ps.rowQty])
			assert.Equal(t, tt.wantNums[1], m[ps.rowPrice])
			assert.Equal(t, tt.wantNums[2], m[ps.rowTotal])
		})
	}

	for _, line := range []string{
		"1.01 Sin números",
		"1.01 Solo dos 1,00 2,00",
		"Cable sin código 1,00 2,00 3,00",
		"1.01 Números 1,00 2,00 3,00 y cola",
	} {
		assert.Nil(t, ps.Row.FindStringSubmatch(line), line)
	}
}

func TestRowPatternAnchorsToLines(t *testing.T) {
	ps := testPatternSet(t)

	// a description line and a numbers-only line must not fuse into a row
	text := "1.01 Cable de cobre\n10,00 5,50 55,00"
	assert.Nil(t, ps.Row.FindStringSubmatch(text))
}
