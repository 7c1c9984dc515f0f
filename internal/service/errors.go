package service

import "errors"

var (
	// ErrInvalidReservationID is returned when a reservation ID is empty.
	ErrInvalidReservationID = errors.New("invalid reservation id")

	// ErrInvalidClientName is returned when the client name is missing.
	ErrInvalidClientName = errors.New("client name is required")

	// ErrInvalidClientPhone is returned when the client phone is missing.
	ErrInvalidClientPhone = errors.New("client phone is required")

	// ErrInvalidTourName is returned when the tour name is missing.
	ErrInvalidTourName = errors.New("tour name is required")

	// ErrInvalidDate is returned when the reservation date is missing.
	ErrInvalidDate = errors.New("reservation date is required")

	// ErrInvalidAdults is returned when a reservation has no adults.
	ErrInvalidAdults = errors.New("at least one adult is required")

	// ErrInvalidChildren is returned when the children count is negative.
	ErrInvalidChildren = errors.New("children count cannot be negative")

	// ErrInvalidTotal is returned when the total amount is negative.
	ErrInvalidTotal = errors.New("total amount cannot be negative")

	// ErrInvalidStatus is returned when a status is not one of the enumerated values.
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPaymentStatus is returned when a payment status is not one of the enumerated values.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrReservationCancelled is returned when mutating a cancelled reservation.
	ErrReservationCancelled = errors.New("reservation already cancelled")

	// ErrReservationCompleted is returned when changing the status of a completed reservation.
	ErrReservationCompleted = errors.New("reservation already completed")

	// ErrInvalidRating is returned when a rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrReservationNotCompleted is returned when rating a reservation that is not completed.
	ErrReservationNotCompleted = errors.New("reservation is not completed")

	// ErrAlreadyRated is returned when a reservation already has feedback.
	ErrAlreadyRated = errors.New("reservation already rated")

	// ErrMissingClientEmail is returned when sending a voucher to a reservation without email.
	ErrMissingClientEmail = errors.New("reservation has no client email")
)
