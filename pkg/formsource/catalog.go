// Package formsource derives form endpoint descriptors from OpenAPI documents
// so submit wiring can target documented operations instead of hand-typed
// action URLs.
package formsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Field is one form-encoded field an operation accepts.
type Field struct {
	Name     string
	Type     string
	Required bool
}

// Form describes an operation that accepts a form-encoded request body.
type Form struct {
	// OperationID is the document's operationId, or "<method>:<path>" when
	// the document omits one.
	OperationID string
	Method      string
	// Action is the operation's path, the value a form's action attribute
	// should carry.
	Action  string
	Summary string
	Fields  []Field
}

// Catalog indexes the form-capable operations of a single document.
type Catalog struct {
	forms map[string]Form
}

// Media types a browser form can submit.
var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Load parses an OpenAPI document payload and indexes its form-capable
// operations.
func Load(ctx context.Context, data []byte) (*Catalog, error) {
	if ctx == nil {
		return nil, errors.New("formsource: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("formsource: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("formsource: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("formsource: validate document: %w", err)
	}

	catalog := &Catalog{forms: make(map[string]Form)}
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			catalog.collect("POST", path, item.Post)
			catalog.collect("PUT", path, item.Put)
			catalog.collect("PATCH", path, item.Patch)
		}
	}

	return catalog, nil
}

// LoadFile reads and parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formsource: read %s: %w", path, err)
	}
	return Load(ctx, data)
}

// Form returns the descriptor for the supplied operation id.
func (c *Catalog) Form(operationID string) (Form, bool) {
	if c == nil {
		return Form{}, false
	}
	form, ok := c.forms[operationID]
	return form, ok
}

// Forms returns every descriptor sorted by operation id.
func (c *Catalog) Forms() []Form {
	if c == nil {
		return nil
	}
	out := make([]Form, 0, len(c.forms))
	for _, form := range c.forms {
		out = append(out, form)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OperationID < out[j].OperationID })
	return out
}

// Empty reports whether the catalog holds any form descriptors.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.forms) == 0
}

func (c *Catalog) collect(method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	schema, ok := formBodySchema(operation.RequestBody)
	if !ok {
		return
	}

	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	form := Form{
		OperationID: id,
		Method:      method,
		Action:      path,
		Summary:     operation.Summary,
		Fields:      schemaFields(schema),
	}
	c.forms[id] = form
}

// formBodySchema returns the schema of the first form-capable media type, or
// false when the operation cannot be driven by a browser form.
func formBodySchema(body *openapi3.RequestBodyRef) (*openapi3.Schema, bool) {
	if body == nil || body.Value == nil {
		return nil, false
	}
	for _, mediaType := range formMediaTypes {
		mt, ok := body.Value.Content[mediaType]
		if !ok || mt.Schema == nil || mt.Schema.Value == nil {
			continue
		}
		return mt.Schema.Value, true
	}
	return nil, false
}

func schemaFields(schema *openapi3.Schema) []Field {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]Field, 0, len(schema.Properties))
	for name, property := range schema.Properties {
		field := Field{Name: name, Required: required[name]}
		if property != nil && property.Value != nil {
			field.Type = firstSchemaType(property.Value.Type)
		}
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
