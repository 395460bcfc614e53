package templates

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/formatdiff/pkg/storage"
)

// Domain errors for template operations.
var (
	ErrNotFound     = errors.New("template not found")
	ErrDuplicate    = errors.New("template already exists")
	ErrNoDefault    = errors.New("no templates available")
	ErrInvalidFile  = errors.New("invalid file")
	ErrInvalidName  = errors.New("template name must not be empty")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps template domain errors to HTTP status codes. Errors
// from blob storage fall through to storage.MapHTTPStatus.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoDefault):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile), errors.Is(err, ErrInvalidName):
		return http.StatusBadRequest
	}
	return storage.MapHTTPStatus(err)
}
