package traits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation is returned when settings do not satisfy their JSON Schema.
var ErrSchemaViolation = errors.New("traits: settings violate schema")

// SchemaViolationError lists every JSON Schema violation found in a blob.
type SchemaViolationError struct {
	Violations []string
}

// Error implements the error interface.
func (e *SchemaViolationError) Error() string {
	return "settings violate schema: " + strings.Join(e.Violations, "; ")
}

// Is matches ErrSchemaViolation.
func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// SettingsJSONSchema converts setting types into a draft-07 JSON Schema
// document describing the settings object. Every field is required.
func SettingsJSONSchema(settings map[string]SettingType) map[string]any {
	properties := make(map[string]any, len(settings))
	required := make([]any, 0, len(settings))
	for name, st := range settings {
		properties[name] = settingJSONSchema(st)
		required = append(required, name)
	}
	doc := map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func settingJSONSchema(st SettingType) map[string]any {
	switch {
	case st.Name == "bool":
		return map[string]any{"type": "boolean"}
	case st.Name == "string":
		return map[string]any{"type": "string"}
	case st.Name == "f32" || st.Name == "f64":
		return map[string]any{"type": "number"}
	case strings.HasPrefix(st.Name, "Range"):
		bound := map[string]any{"type": "integer", "minimum": st.Params["min"], "maximum": st.Params["max"]}
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{"min": bound, "max": bound},
			"required":   []any{"min", "max"},
		}
	case strings.HasPrefix(st.Name, "Constrained"):
		if inclusive, _ := st.Params["inclusive"].(bool); !inclusive {
			return map[string]any{"type": "integer", "exclusiveMinimum": st.Params["min"], "exclusiveMaximum": st.Params["max"]}
		}
		return map[string]any{"type": "integer", "minimum": st.Params["min"], "maximum": st.Params["max"]}
	case isIntegerKind(st.Name):
		return map[string]any{"type": "integer", "minimum": st.Params["min"], "maximum": st.Params["max"]}
	default:
		return map[string]any{}
	}
}

func isIntegerKind(name string) bool {
	switch name {
	case "u8", "u16", "u32", "i8", "i16", "i32":
		return true
	}
	return false
}

// ValidateSettings checks a settings blob against the JSON Schema derived
// from settings. A blob that is not an object fails with ErrNotObject.
func ValidateSettings(settings map[string]SettingType, blob string) error {
	obj, err := parseObject(blob)
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewGoLoader(SettingsJSONSchema(settings))
	documentLoader := gojsonschema.NewGoLoader(obj)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		violations = append(violations, re.String())
	}
	return &SchemaViolationError{Violations: violations}
}
