package comparisons

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/formatdiff/internal/templates"
)

// Domain errors for comparison operations.
var (
	ErrInvalidFile  = errors.New("invalid file: a .docx document is required")
	ErrParseFailed  = errors.New("document could not be parsed")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps comparison errors, including template lookup failures,
// to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrParseFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, templates.ErrNotFound), errors.Is(err, templates.ErrNoDefault):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
