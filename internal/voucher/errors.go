package voucher

import "errors"

var (
	// ErrMalformedReservation is returned when a reservation lacks the fields
	// required for document assembly.
	ErrMalformedReservation = errors.New("malformed reservation")

	// ErrRenderBackend is returned when the rendering backend cannot produce
	// the document. Callers may retry; the builder does not.
	ErrRenderBackend = errors.New("voucher generation failed")
)
