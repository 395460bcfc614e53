package paragraphs

import "errors"

// ErrInputUnavailable indicates a document is missing or was not produced by a
// successful parse. Comparison aborts without a partial result.
var ErrInputUnavailable = errors.New("document input unavailable")
