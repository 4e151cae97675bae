package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obras-dev/presupuestos/internal/analysis"
	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
	"github.com/obras-dev/presupuestos/internal/export"
	"github.com/obras-dev/presupuestos/internal/extract"
	"github.com/obras-dev/presupuestos/internal/pdftext"
)

var (
	firstPage    int
	lastPage     int
	excelPath    string
	analysisPath string
)

var processCmd = &cobra.Command{
	Use:   "process <budget.pdf>",
	Short: "Extract a budget PDF into an XLSX workbook and an analysis JSON",
	Long: `process runs the full pipeline over one budget PDF: page text,
measurement metadata, budget-table reconciliation, entity analysis, and
the two output artifacts. Page windows come from the config file; the
--first-page/--last-page flags narrow both windows for quick runs over
a slice of the document.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().IntVarP(&firstPage, "first-page", "i", 1, "first page of both extraction windows (1-based)")
	processCmd.Flags().IntVarP(&lastPage, "last-page", "f", 0, "last page of both extraction windows (0 means document end)")
	processCmd.Flags().StringVarP(&excelPath, "excel", "e", "", "XLSX output path (defaults to the input path with .xlsx)")
	processCmd.Flags().StringVarP(&analysisPath, "analysis", "a", "", "analysis JSON output path (defaults to the input path with .json)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]

	logger, cleanup, err := newRunLogger()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := os.Stat(input); err != nil {
		return common.ConfigurationErrorf("input PDF %q is not readable: %v", input, err)
	}

	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("first-page") {
		cfg.Extraction.Measurements.First = firstPage
		cfg.Extraction.BudgetTable.First = firstPage
	}
	if cmd.Flags().Changed("last-page") {
		cfg.Extraction.Measurements.Last = lastPage
		cfg.Extraction.BudgetTable.Last = lastPage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.NewString()
	runLogger := logger.With("run_id", runID)
	ctx := common.WithRunID(cmd.Context(), runID)

	doc, err := pdftext.Open(input)
	if err != nil {
		runLogger.Error("process.open_pdf.failed", "path", input, "error", err)
		return err
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			runLogger.Warn("process.close_pdf.failed", "error", cerr)
		}
	}()

	svc, err := extract.NewService(cfg.Extraction, logger)
	if err != nil {
		return err
	}

	progress := &progressReporter{quiet: quiet}
	items, stats, err := svc.Run(ctx, doc, progress.onPage)
	progress.finish()
	if err != nil {
		runLogger.Error("process.extract.failed", "pages_read", stats.PagesRead, "error", err)
		return err
	}

	partidas := make([]entity.Partida, 0, len(items))
	for _, it := range items {
		partidas = append(partidas, entity.Partida{Codigo: it.Code, Descripcion: it.FullDescription()})
	}
	analyzer := analysis.NewAnalyzer(analysis.NewRuleTagger(cfg.Analysis), runLogger)
	result, err := analyzer.Analyze(&entity.AnalysisInput{Partidas: partidas})
	if err != nil {
		runLogger.Error("process.analysis.failed", "error", err)
		return err
	}

	excelOut := outputPath(excelPath, input, ".xlsx")
	analysisOut := outputPath(analysisPath, input, ".json")

	exporter := export.NewService(cfg.Output, runLogger)
	if err := exporter.WriteWorkbook(excelOut, items); err != nil {
		runLogger.Error("process.export.failed", "path", excelOut, "error", err)
		return err
	}
	if err := exporter.WriteAnalysis(analysisOut, result); err != nil {
		runLogger.Error("process.export.failed", "path", analysisOut, "error", err)
		return err
	}

	fmt.Printf("Presupuesto: %d partidas -> %s\n", len(items), excelOut)
	if stats.Inconsistencies > 0 {
		fmt.Printf("⚠ %d partidas con importe inconsistente (detalle en el log)\n", stats.Inconsistencies)
	}
	fmt.Printf("Análisis técnico: %d materiales, %d normativas -> %s\n",
		len(result.ConteoMateriales), len(result.NormativasEncontradas), analysisOut)
	printAlerts(result)
	return nil
}

// outputPath resolves an explicit flag value, or derives the artifact
// path from the input by swapping its extension.
func outputPath(flagValue, input, ext string) string {
	if flagValue != "" {
		return flagValue
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func printAlerts(result *entity.AnalysisResult) {
	if len(result.AlertasTecnicas) == 0 {
		fmt.Println("✔ No se encontraron alertas técnicas")
		return
	}
	fmt.Println()
	fmt.Println("--- RESUMEN DEL ANÁLISIS ---")
	for _, alerta := range result.AlertasTecnicas {
		fmt.Printf(" - [%s] %s\n", alerta.Codigo, alerta.Mensaje)
	}
}
