package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation.
// The values are the wire strings the dashboard exchanges with the API.
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pendiente"
	ReservationStatusConfirmed  ReservationStatus = "confirmada"
	ReservationStatusCancelled  ReservationStatus = "cancelada"
	ReservationStatusCompleted  ReservationStatus = "completada"
	ReservationStatusInProgress ReservationStatus = "en_proceso"
)

// Valid reports whether the status is one of the enumerated values.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled,
		ReservationStatusCompleted, ReservationStatusInProgress:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of a reservation.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pendiente"
	PaymentStatusPaid     PaymentStatus = "pagado"
	PaymentStatusPartial  PaymentStatus = "parcial"
	PaymentStatusRefunded PaymentStatus = "reembolsado"
)

// Valid reports whether the payment status is one of the enumerated values.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusRefunded:
		return true
	}
	return false
}

// TouristGroup is a sub-party travelling under one representative.
type TouristGroup struct {
	RepresentativeName  string
	RepresentativePhone string
	CompanionsCount     int
}

// GroupMember is an individual tourist registered on a reservation.
type GroupMember struct {
	Name           string
	DocumentNumber string
	Age            int // 0 = unknown
	Phone          string
}

// Reservation represents a booked tour service, the central entity of the
// back office. It is created once by the booking flow and afterwards only
// mutated field-by-field; it is never deleted.
type Reservation struct {
	ID                  string
	TourName            string
	Date                time.Time // calendar date, time-zone naive
	Time                string    // departure time, HH:MM
	ClientName          string
	ClientPhone         string
	ClientEmail         string // optional
	PickupLocation      string
	SpecialRequirements string // optional
	Adults              int    // >= 1
	Children            int    // >= 0
	Total               float64
	PricePerAdult       float64 // 0 = derive from Total
	PricePerChild       float64 // 0 = derive from PricePerAdult
	Status              ReservationStatus
	PaymentStatus       PaymentStatus
	IsRated             bool
	Groups              []TouristGroup
	Tourists            []GroupMember
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TotalPassengers returns the passenger count used by filters and stats.
func (r *Reservation) TotalPassengers() int {
	return r.Adults + r.Children
}

// UnitPrices returns the per-adult and per-child prices for the itemized
// voucher rows. When the reservation carries no explicit unit prices they are
// derived from the total, counting each child as half an adult. The derived
// prices are approximate; Total stays authoritative and is never recomputed
// from them.
func (r *Reservation) UnitPrices() (adult, child float64) {
	adult = r.PricePerAdult
	if adult == 0 {
		adult = r.Total / (float64(r.Adults) + float64(r.Children)*0.5)
	}
	child = r.PricePerChild
	if child == 0 {
		child = adult * 0.5
	}
	return adult, child
}
