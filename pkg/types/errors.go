package types

import "errors"

// Error kinds returned by the analysis engine and the catalog. Callers classify
// with errors.Is; messages are wrapped around these with fmt.Errorf.
var (
	// ErrValidation is returned for missing or out-of-range request parameters
	// and malformed consumption profiles. Nothing is computed when it is returned.
	ErrValidation = errors.New("invalid request")
	// ErrDomain is returned when an input makes the model undefined, such as
	// zero peak sun hours.
	ErrDomain = errors.New("undefined for input")
	// ErrInternal is returned when the engine produced a non-finite value.
	ErrInternal = errors.New("internal error")
	// ErrNotFound is returned by the catalog when an item does not exist.
	ErrNotFound = errors.New("not found")
)
