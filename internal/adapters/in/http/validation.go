package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"parceltrack/api"
	"parceltrack/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

const maxBodyBytes = 1 << 20

// Validator checks request bodies against the component schemas of the OpenAPI document.
type Validator struct {
	doc *openapi3.T
}

// NewValidator loads and validates the embedded OpenAPI document.
func NewValidator() (*Validator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return &Validator{doc: doc}, nil
}

// Bind validates the JSON body against the named schema and decodes it into dst.
// An empty body is accepted when optional is set and leaves dst untouched.
func (v *Validator) Bind(c echo.Context, schema string, dst any, optional bool) error {
	ref, ok := v.doc.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return errs.NewInternalError("bind request", fmt.Errorf("schema %s is not defined", schema))
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if len(raw) == 0 {
		if optional {
			return nil
		}
		return errs.NewValueIsRequiredError("body")
	}

	var doc any
	if err = json.Unmarshal(raw, &doc); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err = ref.Value.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", describe(err))
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

// describe flattens schema errors into "field: reason" lines.
func describe(err error) error {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return err
	}
	out := make([]error, 0, len(multi))
	for _, e := range multi {
		var schemaErr *openapi3.SchemaError
		if errors.As(e, &schemaErr) {
			out = append(out, fmt.Errorf("%s: %s", fieldPath(schemaErr), schemaErr.Reason))
			continue
		}
		out = append(out, e)
	}
	return errors.Join(out...)
}

func fieldPath(e *openapi3.SchemaError) string {
	path := e.JSONPointer()
	if len(path) == 0 {
		return "body"
	}
	field := path[0]
	for _, p := range path[1:] {
		field += "." + p
	}
	return field
}
