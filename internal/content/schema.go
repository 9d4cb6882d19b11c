package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://kartu/content.json"

// contentSchema describes a content pack: module name -> either a legacy
// block of words and sentences or a block per register.
const contentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "$meta": {
      "type": "object",
      "properties": {
        "version": {"type": "string", "pattern": "^v[0-9]+\\.[0-9]+\\.[0-9]+"}
      }
    }
  },
  "additionalProperties": {
    "type": "object",
    "anyOf": [
      {"$ref": "#/$defs/block"},
      {
        "properties": {
          "formal": {"$ref": "#/$defs/block"},
          "informal": {"$ref": "#/$defs/block"},
          "neutral": {"$ref": "#/$defs/block"}
        },
        "anyOf": [{"required": ["formal"]}, {"required": ["informal"]}],
        "additionalProperties": false
      }
    ]
  },
  "$defs": {
    "block": {
      "type": "object",
      "properties": {
        "words": {"type": "array", "items": {"$ref": "#/$defs/entry"}},
        "sentences": {"type": "array", "items": {"$ref": "#/$defs/entry"}}
      },
      "additionalProperties": false
    },
    "entry": {
      "type": "object",
      "properties": {
        "indo": {"type": "string"},
        "indonesian": {"type": "string"},
        "english": {"type": "string"},
        "eng": {"type": "string"}
      },
      "anyOf": [{"required": ["indo"]}, {"required": ["indonesian"]}]
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(contentSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse content schema: %w", err)
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

// validate checks raw against the content schema.
func validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	sch, err := schema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}
