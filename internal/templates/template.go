// Package templates implements the reference template domain for formatdiff.
// A template is an uploaded .docx file that later documents are compared
// against. Metadata lives in PostgreSQL and file content in blob storage.
package templates

import (
	"time"

	"github.com/google/uuid"
)

// Template is a registered reference document.
type Template struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	Checksum   string    `json:"checksum"`
	StorageKey string    `json:"storage_key"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a template.
// An empty Name falls back to the filename without its extension.
type CreateCommand struct {
	Data      []byte
	Name      string
	Filename  string
	IsDefault bool
}

// RenameCommand is the JSON body accepted by the rename endpoint.
type RenameCommand struct {
	Name string `json:"name"`
}
