package listing

import (
	"fmt"
	"strconv"

	"parceltrack/internal/pkg/errs"
)

// Kind selects the predicate builder used for a filter value.
type Kind int

const (
	String Kind = iota
	Number
	Bool
)

// Field describes one client-visible field of a listing.
type Field struct {
	// Name is the key clients use in filters, sort and fields.
	Name string
	// Column is the database column Name maps to.
	Column string
	Kind   Kind

	// Parse overrides Kind for enumerated values. It returns the stored value.
	Parse func(string) (any, error)

	Filterable bool
	Searchable bool
	Sortable   bool
}

func (f Field) convert(raw string) (any, error) {
	if f.Parse != nil {
		return f.Parse(raw)
	}
	switch f.Kind {
	case Number:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(f.Name, fmt.Errorf("%q is not a number", raw))
		}
		return v, nil
	case Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(f.Name, fmt.Errorf("%q is not a boolean", raw))
		}
		return v, nil
	default:
		return raw, nil
	}
}

// Schema is the allow-list of a listing. Keys outside it are rejected.
type Schema struct {
	// IDColumn is always part of a projection.
	IDColumn    string
	Fields      []Field
	DefaultSort string
	MaxLimit    int
}

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) searchColumns() []string {
	var cols []string
	for _, f := range s.Fields {
		if f.Searchable {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

func (s Schema) columns() []string {
	cols := []string{s.IDColumn}
	for _, f := range s.Fields {
		if f.Column != s.IDColumn {
			cols = append(cols, f.Column)
		}
	}
	return cols
}
