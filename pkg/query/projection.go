// Package query builds parameterized PostgreSQL statements from a projection
// of logical field names onto table columns.
package query

import "strings"

// ProjectionMap maps logical field names to alias-qualified columns of one
// table. Columns keep their projection order in SELECT lists.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	columns    map[string]string
	names      map[string]string
	columnList []string
}

func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
		names:   make(map[string]string),
	}
}

// Project maps field to column and appends the column to the select list.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns[field] = qualified
	p.names[normalize(field)] = qualified
	p.names[normalize(column)] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Lookup resolves client-supplied names. "CreatedAt", "createdAt" and
// "created_at" all match the same projected column. Unknown names report
// false so they never reach the statement text.
func (p *ProjectionMap) Lookup(name string) (string, bool) {
	col, ok := p.names[normalize(name)]
	return col, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the FROM target: "schema.table alias".
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a field to its qualified column. Unknown fields pass
// through unchanged, so Column is only for names fixed in code; use Lookup
// for anything a client sent.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

func (p *ProjectionMap) ColumnList() []string {
	return p.columnList
}
