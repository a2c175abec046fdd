package receipt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentSchema describes the single JSON line written per scan: either a
// result or an error object.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "oneOf": [
    {
      "type": "object",
      "required": ["items", "total"],
      "additionalProperties": false,
      "properties": {
        "items": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "quantity", "price", "category"],
            "additionalProperties": false,
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "quantity": {"type": "integer", "minimum": 1},
              "price": {"type": "number", "exclusiveMinimum": 0, "maximum": 50},
              "category": {"enum": ["produce", "dairy", "bakery", "pantry", "paper_goods", "other"]}
            }
          }
        },
        "total": {"type": "number", "minimum": 0}
      }
    },
    {
      "type": "object",
      "required": ["error"],
      "additionalProperties": false,
      "properties": {"error": {"type": "string"}}
    }
  ]
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("receipt-document.json", bytes.NewReader([]byte(DocumentSchema))); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("receipt-document.json")
	})
	return schema, schemaErr
}

// ValidateDocument checks that data is a well-formed result or error document.
func ValidateDocument(data []byte) error {
	s, err := documentSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}

// WriteDocument writes v as one line of compact JSON.
func WriteDocument(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
