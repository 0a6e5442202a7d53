package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidTaxonomy  = errors.New("invalid taxonomy")
	ErrCollaborator     = errors.New("taxonomy collaborator failed")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
)
