package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/obras-dev/presupuestos/internal/common"
)

// BuildPartidasJSONSchema returns the analyzer input contract as a
// JSON-Schema (draft 2020-12 subset) generic map. The analyze command
// validates external partidas documents against it before any record
// is processed.
func BuildPartidasJSONSchema() map[string]any {
	partida := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"codigo":      map[string]any{"type": "string"},
			"descripcion": map[string]any{"type": "string"},
		},
		"required": []string{"codigo", "descripcion"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"partidas": map[string]any{
				"type":  "array",
				"items": partida,
			},
		},
		"required": []string{"partidas"},
	}
}

// ValidatePartidasJSON validates data against the partidas schema. Any
// mismatch is a contract violation: it surfaces before per-record work.
func ValidatePartidasJSON(data []byte) error {
	b, err := json.Marshal(BuildPartidasJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("partidas.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("partidas.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return common.ContractViolationError(fmt.Sprintf("partidas document is not valid JSON: %v", err))
	}
	if err := schema.Validate(v); err != nil {
		return common.ContractViolationError(fmt.Sprintf("partidas document does not match the contract: %v", err))
	}
	return nil
}
