package templates

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/formatdiff/pkg/pagination"
)

// System defines the public contract for template domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Template], error)

	Find(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindDefault returns the default template, or the most recently created
	// one when none is flagged. Returns ErrNoDefault when no templates exist.
	FindDefault(ctx context.Context) (*Template, error)

	Create(ctx context.Context, cmd CreateCommand) (*Template, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*Template, error)
	SetDefault(ctx context.Context, id uuid.UUID) (*Template, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Download streams the stored file. The caller must close the reader.
	Download(ctx context.Context, id uuid.UUID) (*Template, io.ReadCloser, error)
}
