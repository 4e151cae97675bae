package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/obras-dev/presupuestos/internal/entity"
)

// AnalysisBytes serializes the analysis result as indented UTF-8 JSON.
// Non-ASCII stays unescaped so "código" is readable in the artifact.
func (s *Service) AnalysisBytes(result *entity.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteAnalysis serializes result and persists it at path.
func (s *Service) WriteAnalysis(path string, result *entity.AnalysisResult) error {
	b, err := s.AnalysisBytes(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write analysis %q: %w", path, err)
	}
	s.logger.Info("export.analysis.ok", "path", path, "alerts", len(result.AlertasTecnicas))
	return nil
}
