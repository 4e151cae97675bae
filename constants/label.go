package constants

// Label classifies a span found by the entity tagger.
type Label string

// Stable values (the analyzer switches on these exact strings).
const (
	LabelMaterial  Label = "MATERIAL"  // construction material term
	LabelNormativa Label = "NORMATIVA" // technical standard reference
	LabelParametro Label = "PARAMETRO" // electrical parameter, e.g. 4x25A
)
