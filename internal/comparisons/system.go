package comparisons

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

// System defines the public contract for comparison operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Parse(ctx context.Context, upload Upload) (*paragraphs.DocumentRecord, error)
	Compare(ctx context.Context, left, right Upload) (*Report, error)

	// CompareTemplate compares upload against the template with the given id,
	// or against the default template when id is nil.
	CompareTemplate(ctx context.Context, id *uuid.UUID, upload Upload) (*Report, error)
}
