package analysis

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/obras-dev/presupuestos/constants"
	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
)

// AlertContactorSinParametro is the message attached to every alert the
// contactor rule raises.
const AlertContactorSinParametro = "Se menciona 'contactor' sin parámetro técnico (ej: 4x25A)."

// fallbackCodigo stands in for a partida that arrived without a code.
const fallbackCodigo = "N/A"

// Analyzer aggregates tagger output over a whole document.
type Analyzer struct {
	tagger Tagger
	logger *slog.Logger
}

func NewAnalyzer(tagger Tagger, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{tagger: tagger, logger: logger}
}

// Analyze validates the input contract, then walks the partidas once:
// material spans feed the lowercase term counter, normativa spans feed
// the upper-cased set, and any description that mentions "contactor"
// without a parameter span raises an alert in encounter order. Partidas
// without a description are skipped and counted, never fatal. A nil
// partidas list is a contract violation, reported before any per-record
// work. Result collections are always allocated, so the serialized
// artifact carries {} and [] instead of null.
func (a *Analyzer) Analyze(input *entity.AnalysisInput) (*entity.AnalysisResult, error) {
	if input == nil || input.Partidas == nil {
		return nil, common.ContractViolationError("the partidas field must be present and be a list")
	}

	result := &entity.AnalysisResult{
		ConteoMateriales:      map[string]int{},
		NormativasEncontradas: []string{},
		AlertasTecnicas:       []entity.Alert{},
	}
	normativas := make(map[string]struct{})
	skipped := 0

	for _, p := range input.Partidas {
		if p.Descripcion == "" {
			skipped++
			a.logger.Debug("analysis.partida.skipped", "codigo", p.Codigo, "reason", "empty description")
			continue
		}

		hasParameter := false
		for _, span := range a.tagger.Tag(p.Descripcion) {
			switch span.Label {
			case constants.LabelMaterial:
				result.ConteoMateriales[strings.ToLower(span.Text)]++
			case constants.LabelNormativa:
				normativas[strings.ToUpper(span.Text)] = struct{}{}
			case constants.LabelParametro:
				hasParameter = true
			}
		}

		if strings.Contains(strings.ToLower(p.Descripcion), "contactor") && !hasParameter {
			codigo := p.Codigo
			if codigo == "" {
				codigo = fallbackCodigo
			}
			result.AlertasTecnicas = append(result.AlertasTecnicas, entity.Alert{
				Codigo:  codigo,
				Mensaje: AlertContactorSinParametro,
			})
		}
	}

	for n := range normativas {
		result.NormativasEncontradas = append(result.NormativasEncontradas, n)
	}
	sort.Strings(result.NormativasEncontradas)

	a.logger.Info("analysis.done",
		"partidas", len(input.Partidas),
		"skipped", skipped,
		"materials", len(result.ConteoMateriales),
		"normativas", len(result.NormativasEncontradas),
		"alerts", len(result.AlertasTecnicas))
	return result, nil
}
