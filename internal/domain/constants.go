package domain

import "github.com/m04kA/SMC-RestaurantService/pkg/types"

// Default settings values (подставляются вместо пустых/некорректных полей)
const (
	DefaultLeadTimeHours          = 2
	DefaultCutoffTime             = types.TimeString("21:00")
	DefaultRefundHoursBefore      = 24
	DefaultMaxReservationsPerSlot = 4
	DefaultPeakHoursStart         = types.TimeString("19:00")
	DefaultPeakHoursEnd           = types.TimeString("21:00")
	DefaultRefundPolicy           = RefundPolicyRefundable
	DefaultNoShowChargeType       = NoShowChargeFixed
	DefaultTimezone               = "UTC"
)

// Business validation constants
const (
	MinPartySize           = 1
	MaxPartySize           = 50
	MaxLeadTimeHours       = 24 * 30
	MaxRefundHoursBefore   = 24 * 30
	MaxTableSeats          = 50
	MaxSlotCovers          = 500
	MaxNotesLength         = 500
	MaxGuestNameLength     = 100
	MaxSpecialOccasions    = 20
	MaxNoShowPercentage    = 100
	MaxReservationsPerSlot = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveReservationStatuses статусы, которые не занимают место
var InactiveReservationStatuses = []ReservationStatus{
	ReservationCancelled,
	ReservationNoShow,
}
