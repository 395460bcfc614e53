package api

import (
	"github.com/JaimeStill/formatdiff/internal/comparisons"
	"github.com/JaimeStill/formatdiff/internal/templates"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Templates   templates.System
	Comparisons comparisons.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	templatesSystem := templates.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	comparisonsSystem := comparisons.New(
		templatesSystem,
		runtime.Compare,
		runtime.Logger,
	)

	return &Domain{
		Templates:   templatesSystem,
		Comparisons: comparisonsSystem,
	}
}
