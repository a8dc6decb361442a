package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	minOptions = 2
	maxOptions = 4
)

// ErrInvalidRecord is returned when a question record breaks the data contract.
var ErrInvalidRecord = errors.New("invalid question record")

// RecordSchema is the JSON Schema of a single question record in a tier file.
var RecordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":        "integer",
			"description": "Stable unique identifier of the question",
		},
		"question": map[string]any{
			"type":        "string",
			"minLength":   1,
			"description": "The prompt shown to the player",
		},
		"options": map[string]any{
			"type":        "array",
			"minItems":    minOptions,
			"maxItems":    maxOptions,
			"items":       map[string]any{"type": "string", "minLength": 1},
			"description": "Two to four answer options",
		},
		"correctAnswer": map[string]any{
			"type":        "integer",
			"description": "Zero-based index of the correct option",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Optional background shown after answering",
		},
		"level": map[string]any{
			"type":        "string",
			"description": "Ignored; the tier comes from the file name",
		},
	},
	"required": []any{"id", "question", "options", "correctAnswer"},
}

// FileSchema is the JSON Schema of a whole tier file.
var FileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type":  "array",
			"items": RecordSchema,
		},
	},
	"required": []any{"questions"},
}

var (
	compileOnce  sync.Once
	fileSchema   *jsonschema.Schema
	compileError error
)

// compiledFileSchema compiles FileSchema once.
func compiledFileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the Go map.
		raw, err := json.Marshal(FileSchema)
		if err != nil {
			compileError = fmt.Errorf("marshal file schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileError = fmt.Errorf("parse file schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-file.json"
		if err := c.AddResource(url, doc); err != nil {
			compileError = fmt.Errorf("add resource: %w", err)
			return
		}
		fileSchema, compileError = c.Compile(url)
	})
	return fileSchema, compileError
}

// ValidateFile checks raw tier-file JSON against FileSchema.
func ValidateFile(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledFileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateRecord applies the semantic checks the schema cannot express.
func ValidateRecord(q Question) error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: question %d has an empty prompt", ErrInvalidRecord, q.ID)
	}
	if len(q.Options) < minOptions || len(q.Options) > maxOptions {
		return fmt.Errorf("%w: question %d has %d options, want %d-%d",
			ErrInvalidRecord, q.ID, len(q.Options), minOptions, maxOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: question %d correct index %d out of range",
			ErrInvalidRecord, q.ID, q.CorrectIndex)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if seen[opt] {
			return fmt.Errorf("%w: question %d repeats option %q", ErrInvalidRecord, q.ID, opt)
		}
		seen[opt] = true
	}
	return nil
}
