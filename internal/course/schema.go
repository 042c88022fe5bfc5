package course

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://course.json"

// documentSchema describes the embedded course document.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":   map[string]any{"type": "string", "minLength": 1},
		"version": map[string]any{"type": "string", "minLength": 2},
		"welcome": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string", "minLength": 1},
				"body":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"title", "body"},
		},
		"modules": map[string]any{
			"type":     "array",
			"minItems": ModuleCount,
			"maxItems": ModuleCount,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"number":  map[string]any{"type": "integer", "minimum": 1, "maximum": ModuleCount},
					"title":   map[string]any{"type": "string", "minLength": 1},
					"summary": map[string]any{"type": "string"},
					"points":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"sites": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"url":      map[string]any{"type": "string", "minLength": 1},
								"phishing": map[string]any{"type": "boolean"},
							},
							"required": []any{"url", "phishing"},
						},
					},
					"quiz": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"prompt": map[string]any{"type": "string", "minLength": 1},
							"options": map[string]any{
								"type":     "array",
								"minItems": 2,
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"value": map[string]any{"type": "string", "minLength": 1},
										"label": map[string]any{"type": "string", "minLength": 1},
									},
									"required": []any{"value", "label"},
								},
							},
							"correct": map[string]any{"type": "string", "minLength": 1},
						},
						"required": []any{"prompt", "options", "correct"},
					},
				},
				"required": []any{"number", "title", "quiz"},
			},
		},
		"assessment": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string", "minLength": 1},
				"intro": map[string]any{"type": "string"},
			},
			"required": []any{"title"},
		},
		"checklist": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question":    map[string]any{"type": "string", "minLength": 1},
					"options":     map[string]any{"type": "array", "minItems": 4, "maxItems": 4, "items": map[string]any{"type": "string"}},
					"correct":     map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"question", "options", "correct", "explanation"},
			},
		},
	},
	"required": []any{"title", "version", "welcome", "modules", "assessment", "questions"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateDocument checks raw against the course document schema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := documentSchemaCompiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func documentSchemaCompiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain JSON values, so round-trip the Go literal.
		b, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(b, &def); err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
