package descriptor

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaID is the resource name the embedded schema is registered under.
const schemaID = "drawgen://schemas/descriptor.json"

// descriptorSchema is the structural schema for diagram descriptors.
//
// It deliberately restricts only shape, not vocabulary: unknown node types,
// edge styles, colors, and layout names must degrade gracefully downstream,
// so the schema leaves those as free strings. The single hard requirement
// is the presence of the "nodes" array.
const descriptorSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "drawgen://schemas/descriptor.json",
  "type": "object",
  "required": ["nodes"],
  "properties": {
    "title": {"type": "string"},
    "subtitle": {"type": "string"},
    "layout": {"type": "string"},
    "theme": {"type": "string"},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "type": {"type": "string"},
          "detail": {"type": "string"},
          "icon": {"type": "string"},
          "variant": {"type": "string"},
          "lane": {"type": "string"},
          "row": {"type": ["string", "number"]}
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to"],
        "properties": {
          "from": {"type": "string", "minLength": 1},
          "to": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "style": {"type": "string"},
          "color": {"type": "string"}
        }
      }
    },
    "groups": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "members": {"type": "array", "items": {"type": "string"}},
          "color": {"type": "string"}
        }
      }
    },
    "lanes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "color": {"type": "string"}
        }
      }
    },
    "grid_columns": {"type": "integer", "minimum": 1},
    "flow_columns": {"type": "integer", "minimum": 1},
    "pipeline": {
      "type": "array",
      "items": {
        "anyOf": [
          {"type": "string"},
          {"type": "array", "items": {"type": "string"}}
        ]
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// schema compiles the embedded descriptor schema once.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(descriptorSchema))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal descriptor schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaID, doc); err != nil {
			compileErr = fmt.Errorf("add descriptor schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaID)
	})
	return compiled, compileErr
}

// ValidateSchema checks raw descriptor JSON against the embedded schema.
// A schema violation means the input is malformed; callers must not proceed
// to layout on error.
func ValidateSchema(raw []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("invalid descriptor: %w", err)
	}
	return nil
}
