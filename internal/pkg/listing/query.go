package listing

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	keySearchTerm = "searchTerm"
	keySort       = "sort"
	keyFields     = "fields"
	keyPage       = "page"
	keyLimit      = "limit"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type predicate struct {
	column string
	values []any
}

type sortKey struct {
	column string
	desc   bool
}

// Query is a parsed, validated listing request.
type Query struct {
	schema     Schema
	predicates []predicate
	searchTerm string
	sort       []sortKey
	fields     []string
	columns    []string
	page       int
	limit      int
}

// Parse validates client parameters against the schema.
//
// Reserved keys are searchTerm, sort (comma separated, "-" for descending), fields
// (comma separated projection), page and limit. Every other key must name a filterable
// field; repeated keys match any of the values.
func (s Schema) Parse(values url.Values) (Query, error) {
	q := Query{schema: s, page: DefaultPage, limit: DefaultLimit}

	var err error
	if q.page, err = positiveInt(values.Get(keyPage), keyPage, DefaultPage, 0); err != nil {
		return Query{}, err
	}
	if q.limit, err = positiveInt(values.Get(keyLimit), keyLimit, DefaultLimit, s.MaxLimit); err != nil {
		return Query{}, err
	}

	q.searchTerm = strings.TrimSpace(values.Get(keySearchTerm))

	sortParam := values.Get(keySort)
	if sortParam == "" {
		sortParam = s.DefaultSort
	}
	if q.sort, err = s.parseSort(sortParam); err != nil {
		return Query{}, err
	}
	if err = q.parseFields(values.Get(keyFields)); err != nil {
		return Query{}, err
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		switch key {
		case keySearchTerm, keySort, keyFields, keyPage, keyLimit:
			continue
		}
		f, ok := s.field(key)
		if !ok || !f.Filterable {
			return Query{}, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a filterable field", key))
		}
		p := predicate{column: f.Column}
		for _, r := range values[key] {
			v, convErr := f.convert(r)
			if convErr != nil {
				return Query{}, convErr
			}
			p.values = append(p.values, v)
		}
		q.predicates = append(q.predicates, p)
	}
	return q, nil
}

func (s Schema) parseSort(raw string) ([]sortKey, error) {
	var keys []sortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		f, ok := s.field(name)
		if !ok || !f.Sortable {
			return nil, errs.NewValueIsInvalidErrorWithCause(keySort, fmt.Errorf("%q is not a sortable field", name))
		}
		keys = append(keys, sortKey{column: f.Column, desc: desc})
	}
	return keys, nil
}

func (q *Query) parseFields(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	q.columns = []string{q.schema.IDColumn}
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f, ok := q.schema.field(name)
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause(keyFields, fmt.Errorf("%q is not a known field", name))
		}
		q.fields = append(q.fields, f.Name)
		if f.Column != q.schema.IDColumn {
			q.columns = append(q.columns, f.Column)
		}
	}
	if len(q.fields) == 0 {
		q.columns = nil
	}
	return nil
}

func positiveInt(raw, name string, fallback, maxValue int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a positive integer", raw))
	}
	if maxValue > 0 && v > maxValue {
		return 0, errs.NewValueIsOutOfRangeError(name, v, 1, maxValue)
	}
	return v, nil
}

// Page returns the requested page number.
func (q Query) Page() int {
	return q.page
}

// Limit returns the page size.
func (q Query) Limit() int {
	return q.limit
}

// Fields returns the projected field names, or nil when every field is selected.
// The id field is always included in the projection, even if absent here.
func (q Query) Fields() []string {
	return q.fields
}

// Filter applies the predicates and the search term. It is used for both the
// count and the page so that total reflects the filtered set.
func (q Query) Filter(db *gorm.DB) *gorm.DB {
	for _, p := range q.predicates {
		col := clause.Column{Name: p.column}
		if len(p.values) == 1 {
			db = db.Where(clause.Eq{Column: col, Value: p.values[0]})
			continue
		}
		db = db.Where(clause.IN{Column: col, Values: p.values})
	}

	if q.searchTerm != "" {
		pattern := "%" + likeEscaper.Replace(q.searchTerm) + "%"
		var ors []clause.Expression
		for _, c := range q.schema.searchColumns() {
			ors = append(ors, clause.Expr{SQL: "? ILIKE ?", Vars: []any{clause.Column{Name: c}, pattern}})
		}
		if len(ors) > 0 {
			db = db.Where(clause.Or(ors...))
		}
	}
	return db
}

// Paginate applies projection, ordering, offset and limit on top of Filter. Without a
// projection every schema column is selected, and nothing outside the schema ever is.
func (q Query) Paginate(db *gorm.DB) *gorm.DB {
	db = q.Filter(db)
	if len(q.columns) > 0 {
		db = db.Select(q.columns)
	} else {
		db = db.Select(q.schema.columns())
	}
	for _, k := range q.sort {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: k.column}, Desc: k.desc})
	}
	return db.Offset((q.page - 1) * q.limit).Limit(q.limit)
}

// Meta builds the pagination metadata for total matching records.
func (q Query) Meta(total int64) Meta {
	return NewMeta(q.page, q.limit, total)
}
