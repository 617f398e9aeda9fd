// Package openapi renders a turnstile router's action tables as an
// OpenAPI 3 document, including per-endpoint security requirements.
//
// The "is this endpoint protected" summary replicates the router's
// policy precedence: explicit per-action policies win over the global
// scheme in either direction, and an inheriting action is only marked
// protected when the global scheme is present and enabled.
package openapi

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/veilhq/turnstile"
)

// Info is the document's info block.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SecurityRequirement maps a security-scheme name to its required
// scopes. Required claim ids are rendered as scopes.
type SecurityRequirement map[string][]string

// Document is a minimal OpenAPI 3 document: paths, operations,
// parameters, and security. It does not attempt to model the entire
// specification.
type Document struct {
	OpenAPI    string                `json:"openapi" yaml:"openapi"`
	Info       Info                  `json:"info" yaml:"info"`
	Paths      map[string]*PathItem  `json:"paths" yaml:"paths"`
	Components *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Security   []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
}

// PathItem holds the operations registered under one route template.
type PathItem struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

// Operation describes one action. Security is a pointer so that an
// explicitly public endpoint serializes as "security: []" (overriding
// document-level security) while an inheriting endpoint omits the field.
type Operation struct {
	Summary     string                 `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                 `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool                   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Parameters  []Parameter            `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Security    *[]SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
	Responses   map[string]Response    `json:"responses" yaml:"responses"`
}

// Parameter describes a path parameter derived from a route key.
type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	In       string `json:"in" yaml:"in"`
	Required bool   `json:"required" yaml:"required"`
	Schema   Schema `json:"schema" yaml:"schema"`
}

// Schema is the parameter value type. Route keys are always strings.
type Schema struct {
	Type string `json:"type" yaml:"type"`
}

// Response documents one response status.
type Response struct {
	Description string `json:"description" yaml:"description"`
}

// Components holds the document's security schemes.
type Components struct {
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// SecurityScheme describes one authentication scheme.
type SecurityScheme struct {
	Type   string `json:"type" yaml:"type"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	In     string `json:"in,omitempty" yaml:"in,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Build walks the router's action tables and produces the document.
func Build(rt *turnstile.Router, info Info) *Document {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    info,
		Paths:   make(map[string]*PathItem),
	}

	scheme := turnstile.SchemeBearer
	if g := rt.Global(); g != nil {
		scheme = g.Scheme
		if g.Enabled {
			doc.Security = []SecurityRequirement{{scheme.SecurityName(): g.RequiredClaims.IDs()}}
		}
	}

	secured := false
	for _, verb := range []turnstile.Verb{turnstile.GET, turnstile.POST, turnstile.PUT, turnstile.DELETE} {
		for _, action := range rt.Actions(verb) {
			template := action.Route().Template()
			item := doc.Paths[template]
			if item == nil {
				item = &PathItem{}
				doc.Paths[template] = item
			}

			op := buildOperation(action, scheme)
			if op.Security != nil && len(*op.Security) > 0 {
				secured = true
			}

			switch verb {
			case turnstile.GET:
				item.Get = op
			case turnstile.POST:
				item.Post = op
			case turnstile.PUT:
				item.Put = op
			case turnstile.DELETE:
				item.Delete = op
			}
		}
	}

	if secured || len(doc.Security) > 0 {
		doc.Components = &Components{
			SecuritySchemes: map[string]SecurityScheme{
				scheme.SecurityName(): schemeObject(scheme),
			},
		}
	}
	return doc
}

func buildOperation(action *turnstile.Action, scheme turnstile.Scheme) *Operation {
	desc := action.Description()
	op := &Operation{
		Summary:     desc.Summary,
		Description: desc.Description,
		OperationID: desc.OperationID,
		Tags:        desc.Tags,
		Deprecated:  desc.Deprecated,
		Responses:   make(map[string]Response),
	}

	for _, key := range action.Route().Keys() {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     key,
			In:       "path",
			Required: true,
			Schema:   Schema{Type: "string"},
		})
	}

	for _, r := range desc.Responses {
		op.Responses[strconv.Itoa(r.Status)] = Response{Description: r.Description}
	}
	if len(op.Responses) == 0 {
		op.Responses["200"] = Response{Description: "OK"}
	}

	switch action.Policy().Kind() {
	case turnstile.PolicyAllowAnonymous:
		// Explicitly public: override any document-level security.
		op.Security = &[]SecurityRequirement{}
	case turnstile.PolicyRequireAuthentication:
		op.Security = &[]SecurityRequirement{{scheme.SecurityName(): []string{}}}
	case turnstile.PolicyRequireClaims:
		op.Security = &[]SecurityRequirement{{scheme.SecurityName(): action.Policy().RequiredClaims().IDs()}}
	}
	// PolicyInheritGlobal: omit, inheriting document-level security.
	return op
}

func schemeObject(s turnstile.Scheme) SecurityScheme {
	switch s {
	case turnstile.SchemeBasic:
		return SecurityScheme{Type: "http", Scheme: "basic"}
	case turnstile.SchemeAPIKey:
		return SecurityScheme{Type: "apiKey", In: "header", Name: "X-API-Key"}
	default:
		return SecurityScheme{Type: "http", Scheme: "bearer"}
	}
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
