package contract

import "github.com/google/jsonschema-go/jsonschema"

// Schema builders. Each call returns a fresh tree: a resolved schema may not
// share nodes with another one.

func String() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string"}
}

// Any accepts every JSON value.
func Any() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// Field is one named property of an object schema.
type Field struct {
	Name     string
	Schema   *jsonschema.Schema
	Optional bool
}

func Required(name string, s *jsonschema.Schema) Field {
	return Field{Name: name, Schema: s}
}

func Optional(name string, s *jsonschema.Schema) Field {
	return Field{Name: name, Schema: s, Optional: true}
}

// Object builds an object schema. Unknown properties are allowed, matching
// the lenient body parsing of the HTTP layer.
func Object(fields ...Field) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(fields)),
	}
	for _, f := range fields {
		s.Properties[f.Name] = f.Schema
		s.PropertyOrder = append(s.PropertyOrder, f.Name)
		if !f.Optional {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}
