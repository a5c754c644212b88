// Package openapi renders the contract registry as an OpenAPI 3.1 document.
package openapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/xilidan/echotube/gateways/api/contract"
)

const Version = "3.1.0"

type Document struct {
	OpenAPI string              `json:"openapi"`
	Info    Info                `json:"info"`
	Servers []Server            `json:"servers,omitempty"`
	Paths   map[string]PathItem `json:"paths"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Server struct {
	URL string `json:"url"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]*Operation

type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

const mediaJSON = "application/json"

// Generate describes every endpoint of reg. Only the registry is consulted.
func Generate(reg *contract.Registry, info Info, servers ...string) *Document {
	doc := &Document{
		OpenAPI: Version,
		Info:    info,
		Paths:   make(map[string]PathItem),
	}
	for _, s := range servers {
		doc.Servers = append(doc.Servers, Server{URL: s})
	}

	for _, e := range reg.Endpoints() {
		op := &Operation{
			OperationID: e.Name,
			Summary:     e.Summary,
			Responses:   make(map[string]Response, len(e.Responses)),
		}
		if e.Body != nil {
			op.RequestBody = &RequestBody{
				Required: true,
				Content:  map[string]MediaType{mediaJSON: {Schema: e.Body}},
			}
		}
		for status, s := range e.Responses {
			resp := Response{Description: contract.StatusText(status)}
			if s != nil {
				resp.Content = map[string]MediaType{mediaJSON: {Schema: s}}
			}
			op.Responses[strconv.Itoa(status)] = resp
		}

		item, ok := doc.Paths[e.Path]
		if !ok {
			item = PathItem{}
			doc.Paths[e.Path] = item
		}
		item[strings.ToLower(e.Method)] = op
	}
	return doc
}

func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi document: %w", err)
	}
	return data, nil
}

// YAML renders the document through its JSON form so schema marshalling
// stays identical between the two formats.
func (d *Document) YAML() ([]byte, error) {
	data, err := d.JSON()
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse openapi json: %w", err)
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi yaml: %w", err)
	}
	return out, nil
}

// blockStyle drops the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Operations lists "METHOD path" pairs present in the document.
func (d *Document) Operations() []string {
	var out []string
	for path, item := range d.Paths {
		for method := range item {
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	return out
}
