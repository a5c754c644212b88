// Package contract is the single source of truth for the HTTP API: every
// route, its request body schema and the schema of each response status.
// Request validation, response checking and documentation all read from it.
package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	pkgjson "github.com/xilidan/echotube/pkg/json"
)

// Endpoint declares one operation. A nil response schema means the status
// is answered without a body.
type Endpoint struct {
	Name      string
	Method    string
	Path      string
	Summary   string
	Since     int
	Body      *jsonschema.Schema
	Responses map[int]*jsonschema.Schema
}

type compiled struct {
	endpoint  Endpoint
	body      *jsonschema.Resolved
	responses map[int]*jsonschema.Resolved
}

type Registry struct {
	endpoints []Endpoint
	byName    map[string]*compiled
}

// ValidationError lists why a payload does not satisfy its schema.
type ValidationError struct {
	Endpoint string
	Issues   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", e.Endpoint, strings.Join(e.Issues, "; "))
}

var ErrUnknownEndpoint = errors.New("unknown endpoint")

// New compiles the endpoint table. Names and method/path pairs must be unique.
func New(endpoints ...Endpoint) (*Registry, error) {
	r := &Registry{byName: make(map[string]*compiled, len(endpoints))}
	routes := make(map[string]string, len(endpoints))

	for _, e := range endpoints {
		if e.Name == "" || e.Path == "" || e.Method == "" {
			return nil, fmt.Errorf("endpoint %q: name, method and path are required", e.Name)
		}
		if _, ok := r.byName[e.Name]; ok {
			return nil, fmt.Errorf("endpoint %q declared twice", e.Name)
		}
		route := e.Method + " " + e.Path
		if other, ok := routes[route]; ok {
			return nil, fmt.Errorf("endpoint %q: route %s already used by %q", e.Name, route, other)
		}
		routes[route] = e.Name

		c := &compiled{endpoint: e, responses: make(map[int]*jsonschema.Resolved, len(e.Responses))}
		if e.Body != nil {
			rs, err := e.Body.Resolve(nil)
			if err != nil {
				return nil, fmt.Errorf("endpoint %q: body schema: %w", e.Name, err)
			}
			c.body = rs
		}
		for status, s := range e.Responses {
			if s == nil {
				c.responses[status] = nil
				continue
			}
			rs, err := s.Resolve(nil)
			if err != nil {
				return nil, fmt.Errorf("endpoint %q: %d response schema: %w", e.Name, status, err)
			}
			c.responses[status] = rs
		}

		r.endpoints = append(r.endpoints, e)
		r.byName[e.Name] = c
	}
	return r, nil
}

// MustNew is New for package-level tables known to be valid.
func MustNew(endpoints ...Endpoint) *Registry {
	r, err := New(endpoints...)
	if err != nil {
		panic(err)
	}
	return r
}

// Endpoints returns the table in declaration order.
func (r *Registry) Endpoints() []Endpoint {
	return slices.Clone(r.endpoints)
}

func (r *Registry) Lookup(name string) (Endpoint, bool) {
	c, ok := r.byName[name]
	if !ok {
		return Endpoint{}, false
	}
	return c.endpoint, true
}

// ForVersion returns the operations available in API version v.
func (r *Registry) ForVersion(v int) *Registry {
	out := &Registry{byName: make(map[string]*compiled)}
	for _, e := range r.endpoints {
		if e.Since > v {
			continue
		}
		out.endpoints = append(out.endpoints, e)
		out.byName[e.Name] = r.byName[e.Name]
	}
	return out
}

// ValidateRequest decodes body and checks it against the endpoint's body
// schema. It returns the decoded object on success.
func (r *Registry) ValidateRequest(name string, body []byte) (map[string]any, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}

	var instance any
	if err := json.Unmarshal(body, &instance); err != nil {
		return nil, &ValidationError{Endpoint: name, Issues: []string{"body is not valid JSON: " + err.Error()}}
	}
	obj, ok := instance.(map[string]any)
	if !ok {
		return nil, &ValidationError{Endpoint: name, Issues: []string{"body must be a JSON object"}}
	}
	if c.body == nil {
		return obj, nil
	}
	if err := c.body.Validate(obj); err != nil {
		return nil, &ValidationError{Endpoint: name, Issues: issues(err)}
	}
	return obj, nil
}

// ValidateResponse checks a handler's response against the schema declared
// for status. Statuses absent from the table are not checked.
func (r *Registry) ValidateResponse(name string, status int, body any) error {
	c, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}

	rs, declared := c.responses[status]
	if !declared {
		return nil
	}
	if rs == nil {
		if body != nil {
			return &ValidationError{Endpoint: name, Issues: []string{fmt.Sprintf("status %d must not carry a body", status)}}
		}
		return nil
	}

	instance, err := pkgjson.Normalize(body)
	if err != nil {
		return err
	}
	if err := rs.Validate(instance); err != nil {
		return &ValidationError{Endpoint: name, Issues: issues(err)}
	}
	return nil
}

// StatusText is used in generated docs when an endpoint has no better text.
func StatusText(status int) string {
	if t := http.StatusText(status); t != "" {
		return t
	}
	return fmt.Sprintf("Status %d", status)
}

func issues(err error) []string {
	var out []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
	}
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}
