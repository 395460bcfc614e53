package routes

import (
	"net/http"

	"github.com/JaimeStill/formatdiff/pkg/openapi"
)

// Route binds Method and Pattern to Handler. OpenAPI, when set, describes
// the route in the generated API document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// path is the mux pattern without the method.
func (r Route) path(prefix string) string {
	return prefix + r.Pattern
}
