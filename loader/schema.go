package loader

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaJSON is the embedded JSON Schema for descriptor file validation.
var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://taoframework.com/schemas/gl-descriptors/v1",
  "title": "glbindgen descriptor file",
  "description": "Parsed function and constant descriptors consumed by glbindgen.",
  "type": "object",
  "required": ["functions"],
  "additionalProperties": false,
  "properties": {
    "functions": {
      "type": "array",
      "items": { "$ref": "#/$defs/function" }
    },
    "constants": {
      "type": "array",
      "items": { "$ref": "#/$defs/constant" }
    }
  },
  "$defs": {
    "typeName": {
      "description": "A bare type name. Out-flow and array shapes are expressed with the flow and array keys.",
      "type": "string",
      "pattern": "^[A-Za-z_][A-Za-z0-9_.]*$"
    },
    "function": {
      "type": "object",
      "required": ["name", "return"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z][A-Za-z0-9_]*$" },
        "return": { "$ref": "#/$defs/typeName" },
        "version": { "type": ["string", "number"], "pattern": "^\\d+(\\.\\d+)*$" },
        "extension": { "type": "boolean" },
        "wrapper": {
          "type": "string",
          "enum": ["none", "returns_string", "void_pointer_in", "void_pointer_out", "array_in"]
        },
        "parameters": {
          "type": "array",
          "items": { "$ref": "#/$defs/parameter" }
        }
      }
    },
    "parameter": {
      "type": "object",
      "required": ["name", "type"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "type": { "$ref": "#/$defs/typeName" },
        "previous_type": { "$ref": "#/$defs/typeName" },
        "flow": { "type": "string", "enum": ["in", "out"] },
        "array": { "type": "boolean" }
      }
    },
    "constant": {
      "type": "object",
      "required": ["name", "value"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" },
        "value": { "type": ["string", "number"] }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// SchemaJSON returns the embedded descriptor JSON Schema.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema validates raw YAML bytes against the descriptor JSON Schema.
func ValidateSchema(yamlData []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(yamlData, &raw); err != nil {
		return errors.Wrap(err, "parsing YAML")
	}

	if err := compiledSchema.Validate(convertYAMLToJSON(raw)); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}

// convertYAMLToJSON converts YAML-decoded values into the shapes
// encoding/json would produce, which is what the schema validator expects.
func convertYAMLToJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return v
	}
}
