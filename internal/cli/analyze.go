package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obras-dev/presupuestos/internal/analysis"
	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
	"github.com/obras-dev/presupuestos/internal/export"
)

var analyzeOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <partidas.json>",
	Short: "Run the entity analysis over an existing partidas document",
	Long: `analyze skips extraction and runs only the entity analysis. The
input must be a JSON document with a "partidas" list of {codigo,
descripcion} objects, the same shape the process command produces.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "analysis JSON output path (stdout when empty)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]

	logger, cleanup, err := newRunLogger()
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return common.ConfigurationErrorf("partidas document %q is not readable: %v", input, err)
	}
	if err := analysis.ValidatePartidasJSON(data); err != nil {
		return err
	}
	var in entity.AnalysisInput
	if err := json.Unmarshal(data, &in); err != nil {
		return common.ContractViolationError(fmt.Sprintf("partidas document does not decode: %v", err))
	}

	runLogger := logger.With("run_id", uuid.NewString())
	analyzer := analysis.NewAnalyzer(analysis.NewRuleTagger(cfg.Analysis), runLogger)
	result, err := analyzer.Analyze(&in)
	if err != nil {
		runLogger.Error("analyze.failed", "error", err)
		return err
	}

	exporter := export.NewService(cfg.Output, runLogger)
	if analyzeOut == "" {
		out, err := exporter.AnalysisBytes(result)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := exporter.WriteAnalysis(analyzeOut, result); err != nil {
		runLogger.Error("analyze.export.failed", "path", analyzeOut, "error", err)
		return err
	}
	printAlerts(result)
	return nil
}
