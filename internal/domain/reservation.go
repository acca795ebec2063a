package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

// Reservation represents a guest reservation at a restaurant
type Reservation struct {
	ID              int64
	RestaurantID    int64
	GuestName       string
	Phone           *string
	PartySize       int
	ReservationTime time.Time
	Status          ReservationStatus
	TableID         *int64
	SpecialOccasion *string
	Notes           *string

	// Депозит фиксируется в момент бронирования
	DepositAmount  float64
	DepositPaid    bool
	RefundEligible *bool

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the reservation still holds a place
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending ||
		r.Status == ReservationConfirmed ||
		r.Status == ReservationSeated
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// CanBeSeated returns true if a table can be assigned to the reservation
func (r *Reservation) CanBeSeated() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled
}

// Party returns the party described by the reservation
func (r *Reservation) Party() Party {
	return Party{PartySize: r.PartySize, RequestedTime: r.ReservationTime}
}

// SeatableReservationStatuses статусы, из которых допустима посадка
var SeatableReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
}

// ReservationsFilter фильтр для выборки бронирований ресторана
type ReservationsFilter struct {
	RestaurantID int64      // Обязательный параметр
	From         *time.Time // Начало периода (включительно)
	To           *time.Time // Конец периода (не включительно)
	Status       *ReservationStatus
}

// Party гость или компания гостей, для которой считается депозит или ищется стол
type Party struct {
	PartySize     int
	RequestedTime time.Time
}

// IsWeekend returns true if the requested time falls on Saturday or Sunday
func (p Party) IsWeekend() bool {
	wd := p.RequestedTime.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
