package entity

import "github.com/obras-dev/presupuestos/constants"

// Partida is the {code, description} pair the analyzer consumes. The JSON
// shape matches the partidas documents produced for and accepted from
// external callers.
type Partida struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
}

// AnalysisInput is the top-level analyzer contract: a document with a
// "partidas" list. A missing list is a contract violation, not an empty run.
type AnalysisInput struct {
	Partidas []Partida `json:"partidas"`
}

// Span is one entity occurrence reported by a tagger.
type Span struct {
	Text  string          `json:"text"`
	Label constants.Label `json:"label"`
}

// Alert flags a line item whose description mentions risky equipment
// without the technical parameter that should accompany it.
type Alert struct {
	Codigo  string `json:"código"`
	Mensaje string `json:"mensaje"`
}

// AnalysisResult aggregates entity findings over all analyzed partidas.
// Maps and slices are always allocated so the JSON artifact carries
// {} / [] instead of null.
type AnalysisResult struct {
	ConteoMateriales      map[string]int `json:"conteo_materiales"`
	NormativasEncontradas []string       `json:"normativas_encontradas"`
	AlertasTecnicas       []Alert        `json:"alertas_tecnicas"`
}
