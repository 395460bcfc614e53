package database

import "errors"

// ErrNotReady wraps ping failures returned by Check.
var ErrNotReady = errors.New("database not ready")
