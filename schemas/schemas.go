// Package schemas contains the JSON Schema contracts that Petstore responses must satisfy.
//
// The schemas are kept as YAML documents next to this file and validated with the
// kin-openapi schema implementation, which supports the subset of JSON Schema we rely on:
// types, required properties, enums, minimums, and additionalProperties: false.
package schemas

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	//go:embed pet.yaml
	petSchemaData []byte

	//go:embed inventory.yaml
	inventorySchemaData []byte
)

var (
	// Pet describes a single pet as returned by the pet endpoints.
	Pet = mustLoad("Pet", petSchemaData)

	// Inventory describes the store inventory summary.
	Inventory = mustLoad("Inventory", inventorySchemaData)
)

// Schema is a named, immutable structural contract.
type Schema struct {
	name   string
	schema *openapi3.Schema
}

// SchemaViolation is returned when a value does not conform to a Schema.
type SchemaViolation struct {
	// Schema is the name of the schema that was violated.
	Schema string

	// Path is a JSON Pointer to the offending value, or "(root)".
	Path string

	// Reason describes the constraint that failed.
	Reason string
}

func (v *SchemaViolation) Error() string {
	return fmt.Sprintf("value does not match %s schema at %s: %s", v.Schema, v.Path, v.Reason)
}

// Load parses a schema from a YAML or JSON document.
func Load(name string, data []byte) (*Schema, error) {
	var s openapi3.Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid %s schema: %w", name, err)
	}
	return &Schema{name: name, schema: &s}, nil
}

func mustLoad(name string, data []byte) *Schema {
	s, err := Load(name, data)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Validate checks a value against the schema. The value can be the result of decoding JSON into
// an interface{}, an ldvalue.Value, or any type that can be marshaled to JSON. It returns nil
// or a *SchemaViolation.
func (s *Schema) Validate(value interface{}) error {
	normalized, err := normalize(value)
	if err != nil {
		return &SchemaViolation{Schema: s.name, Path: "(root)", Reason: err.Error()}
	}
	err = s.schema.VisitJSON(normalized)
	if err == nil {
		return nil
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		path := "(root)"
		if pointer := se.JSONPointer(); len(pointer) > 0 {
			path = "/" + strings.Join(pointer, "/")
		}
		return &SchemaViolation{Schema: s.name, Path: path, Reason: se.Reason}
	}
	return &SchemaViolation{Schema: s.name, Path: "(root)", Reason: err.Error()}
}

// ValidateJSON is a shortcut for validating a decoded response body.
func (s *Schema) ValidateJSON(value ldvalue.Value) error {
	return s.Validate(value)
}

// normalize converts a value into the generic form that openapi3 knows how to visit.
func normalize(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil, bool, float64, string, map[string]interface{}, []interface{}:
		return v, nil
	case ldvalue.Value:
		return v.AsArbitraryValue(), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value cannot be represented as JSON: %w", err)
	}
	var ret interface{}
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
