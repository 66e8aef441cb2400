package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrPrecondition     = errors.New("precondition violated")
	ErrEmptyTraining    = errors.New("empty training set")
	ErrEmptyTest        = errors.New("empty test set")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)
