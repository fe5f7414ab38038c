package models

import (
	"errors"
)

// Error kinds surfaced by the lookup pipeline. Handlers map these to
// HTTP statuses; nothing below them crashes the process.
var (
	ErrConfiguration      = errors.New("database credentials are not configured")
	ErrConnectivity       = errors.New("record store unreachable")
	ErrNotFound           = errors.New("record not found")
	ErrCatalogUnavailable = errors.New("price catalog unavailable")
)
