package templates

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/formatdiff/pkg/query"
	"github.com/JaimeStill/formatdiff/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "templates", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("filename", "Filename").
	Project("size_bytes", "SizeBytes").
	Project("checksum", "Checksum").
	Project("storage_key", "StorageKey").
	Project("is_default", "IsDefault").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for template queries.
// Name and Filename use case-insensitive contains matching; IsDefault and
// Checksum match exactly.
type Filters struct {
	Name      *string `json:"name,omitempty"`
	Filename  *string `json:"filename,omitempty"`
	Checksum  *string `json:"checksum,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereContains("Filename", f.Filename).
		WhereEquals("Checksum", f.Checksum).
		WhereEquals("IsDefault", f.IsDefault)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if cs := values.Get("checksum"); cs != "" {
		f.Checksum = &cs
	}

	if d := values.Get("is_default"); d != "" {
		if v, err := strconv.ParseBool(d); err == nil {
			f.IsDefault = &v
		}
	}

	return f
}

func scanTemplate(s repository.Scanner) (Template, error) {
	var t Template
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Filename,
		&t.SizeBytes,
		&t.Checksum,
		&t.StorageKey,
		&t.IsDefault,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
