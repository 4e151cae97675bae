package common

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Output     OutputConfig     `mapstructure:"output"`
}

// PageRange is a 1-based inclusive page window. Last == 0 means
// "to the end of the document".
type PageRange struct {
	First int `mapstructure:"first"`
	Last  int `mapstructure:"last"`
}

// Resolve clamps the range against the document's page count.
func (r PageRange) Resolve(numPages int) (first, last int) {
	first = r.First
	if first < 1 {
		first = 1
	}
	last = r.Last
	if last == 0 || last > numPages {
		last = numPages
	}
	return first, last
}

// PatternConfig holds the raw regular expressions the extractor compiles.
// Both must be present; an incomplete set is a configuration error.
type PatternConfig struct {
	Code   string `mapstructure:"code"`
	Number string `mapstructure:"number"`
}

// NumberFormatConfig names the locale separators for numeric fields.
type NumberFormatConfig struct {
	Thousands string `mapstructure:"thousands"`
	Decimal   string `mapstructure:"decimal"`
}

// ExtractionConfig holds page ranges and recognition settings for the
// two extraction passes.
type ExtractionConfig struct {
	Measurements PageRange          `mapstructure:"measurements"`
	BudgetTable  PageRange          `mapstructure:"budget_table"`
	Units        []string           `mapstructure:"units"`
	Patterns     PatternConfig      `mapstructure:"patterns"`
	NumberFormat NumberFormatConfig `mapstructure:"number_format"`
	Tolerance    float64            `mapstructure:"tolerance"`
}

// AnalysisConfig holds the term vocabularies for the rule tagger.
type AnalysisConfig struct {
	Materials  []string `mapstructure:"materials"`
	Normativas []string `mapstructure:"normativas"`
}

// OutputConfig names the workbook sheets.
type OutputConfig struct {
	BudgetSheet string `mapstructure:"budget_sheet"`
	DetailSheet string `mapstructure:"detail_sheet"`
}

const (
	// DefaultCodePattern recognizes an item code: 2-3 dot-separated numeric
	// segments. Legacy documents carry 1-digit segments ("1.01.01"), so each
	// segment accepts 1-3 digits.
	DefaultCodePattern = `\d{1,3}(?:\.\d{1,3}){1,2}`

	// DefaultNumberPattern recognizes a locale-formatted numeric token:
	// "1.234,56", "100,00", "1.000" or a bare integer.
	DefaultNumberPattern = `\d{1,3}(?:\.\d{3})*(?:,\d+)?`

	// DefaultTolerance is the maximum accepted |total - quantity*price|
	// before a row is flagged as inconsistent.
	DefaultTolerance = 0.1
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("extraction.measurements.first", 1)
	v.SetDefault("extraction.measurements.last", 0)
	v.SetDefault("extraction.budget_table.first", 1)
	v.SetDefault("extraction.budget_table.last", 0)
	v.SetDefault("extraction.units", []string{"ud", "m2", "m3", "kg", "ml", "m", "l", "uds"})
	v.SetDefault("extraction.patterns.code", DefaultCodePattern)
	v.SetDefault("extraction.patterns.number", DefaultNumberPattern)
	v.SetDefault("extraction.number_format.thousands", ".")
	v.SetDefault("extraction.number_format.decimal", ",")
	v.SetDefault("extraction.tolerance", DefaultTolerance)
	v.SetDefault("analysis.materials", []string{"cable", "bornas", "contactor", "protección"})
	v.SetDefault("analysis.normativas", []string{"REBT", "IEC", "UNE-EN"})
	v.SetDefault("output.budget_sheet", "PRESUPUESTO")
	v.SetDefault("output.detail_sheet", "DESCRIPCIONES_COMPLETAS")
}

// LoadConfig builds the configuration from defaults plus an optional YAML
// file. An empty path loads pure defaults; a named file must exist and parse.
// No environment variables are consulted: everything beyond paths and page
// ranges travels in the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ConfigurationErrorf("read config file %q: %v", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ConfigurationErrorf("unmarshal config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration before any extraction work starts.
func (c *Config) Validate() error {
	if err := validateRange("extraction.measurements", c.Extraction.Measurements); err != nil {
		return err
	}
	if err := validateRange("extraction.budget_table", c.Extraction.BudgetTable); err != nil {
		return err
	}
	if len(c.Extraction.Units) == 0 {
		return ConfigurationError("extraction.units must list at least one unit token")
	}
	if c.Extraction.Patterns.Code == "" || c.Extraction.Patterns.Number == "" {
		return ConfigurationError("extraction.patterns requires both code and number expressions")
	}
	if len(c.Extraction.NumberFormat.Thousands) != 1 || len(c.Extraction.NumberFormat.Decimal) != 1 {
		return ConfigurationError("extraction.number_format separators must be single characters")
	}
	if c.Extraction.NumberFormat.Thousands == c.Extraction.NumberFormat.Decimal {
		return ConfigurationError("extraction.number_format separators must differ")
	}
	if c.Extraction.Tolerance < 0 {
		return ConfigurationError("extraction.tolerance must not be negative")
	}
	if c.Output.BudgetSheet == "" || c.Output.DetailSheet == "" {
		return ConfigurationError("output sheet names must not be empty")
	}
	return nil
}

func validateRange(name string, r PageRange) error {
	if r.First < 1 {
		return ConfigurationErrorf("%s.first must be >= 1, got %d", name, r.First)
	}
	if r.Last < 0 {
		return ConfigurationErrorf("%s.last must be >= 0, got %d", name, r.Last)
	}
	if r.Last != 0 && r.Last < r.First {
		return ConfigurationErrorf("%s: last page %d precedes first page %d", name, r.Last, r.First)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("measurements=%d-%d budget_table=%d-%d units=%d tolerance=%.2f",
		c.Extraction.Measurements.First, c.Extraction.Measurements.Last,
		c.Extraction.BudgetTable.First, c.Extraction.BudgetTable.Last,
		len(c.Extraction.Units), c.Extraction.Tolerance)
}
