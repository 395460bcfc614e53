package routes

import (
	"net/http"

	"github.com/JaimeStill/formatdiff/pkg/openapi"
)

// Group mounts Routes under Prefix. Children nest beneath the parent prefix.
// Tags are applied to every documented operation in the group that has
// none, and Schemas are added to the document's components.
type Group struct {
	Prefix   string
	Tags     []string
	Schemas  map[string]*openapi.Schema
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	walk("", groups, func(prefix string, _ Group, route Route) {
		mux.HandleFunc(route.Method+" "+route.path(prefix), route.Handler)
	})
}

// Document adds every route carrying an OpenAPI operation to spec, along
// with each group's schemas. Routes without one are left out.
func Document(spec *openapi.Spec, groups ...Group) {
	for _, g := range flatten(groups) {
		if len(g.Schemas) > 0 {
			spec.Components.AddSchemas(g.Schemas)
		}
	}

	walk("", groups, func(prefix string, group Group, route Route) {
		if route.OpenAPI == nil {
			return
		}
		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = group.Tags
		}
		spec.AddOperation(route.path(prefix), route.Method, &op)
	})
}

func walk(parent string, groups []Group, fn func(prefix string, group Group, route Route)) {
	for _, group := range groups {
		prefix := parent + group.Prefix
		for _, route := range group.Routes {
			fn(prefix, group, route)
		}
		walk(prefix, group.Children, fn)
	}
}

func flatten(groups []Group) []Group {
	var all []Group
	for _, g := range groups {
		all = append(all, g)
		all = append(all, flatten(g.Children)...)
	}
	return all
}
