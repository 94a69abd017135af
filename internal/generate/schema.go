package generate

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// moduleListSchemaDef constrains the parsed module-list array.
var moduleListSchemaDef = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
		},
		"required": []any{"title", "description"},
	},
}

// moduleContentSchemaDef constrains the parsed module-content array.
var moduleContentSchemaDef = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"html": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"html"},
	},
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateArray checks extracted JSON against one of the array schemas.
// A mismatch is a ParseError: the upstream produced an array we cannot
// use, which is the same failure as producing no array at all.
func validateArray(name string, def map[string]any, raw string) error {
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return fmt.Errorf("compile %s schema: %w", name, err)
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, not a Go map with typed
	// slices. Round-trip through encoding/json to get a clean value.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
