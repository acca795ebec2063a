package domain

import (
	"time"
	// База часовых поясов встроена: в контейнере может не быть /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// RefundPolicy политика возврата депозита при отмене
type RefundPolicy string

const (
	RefundPolicyRefundable    RefundPolicy = "refundable"
	RefundPolicyNonRefundable RefundPolicy = "non-refundable"
	RefundPolicyConditional   RefundPolicy = "conditional"
)

// NoShowChargeType способ расчета штрафа за неявку
type NoShowChargeType string

const (
	NoShowChargeFixed      NoShowChargeType = "fixed"
	NoShowChargePercentage NoShowChargeType = "percentage"
)

// Settings represents the persisted configuration of a restaurant.
// JSON-ключи совпадают с хранимой формой (колонки JSONB).
type Settings struct {
	RestaurantID int64               `json:"restaurant_id"`
	Reservation  ReservationSettings `json:"reservation_settings"`
	Manager      ManagerSettings     `json:"manager_settings"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ReservationSettings guest-facing reservation rules
type ReservationSettings struct {
	LeadTimeHours          int              `json:"lead_time_hours"`
	CutoffTime             types.TimeString `json:"cutoff_time"`
	AutoConfirm            bool             `json:"auto_confirm"`
	AllowSpecialNotes      bool             `json:"allow_special_notes"`
	SpecialOccasions       []string         `json:"special_occasions"`
	MaxReservationsPerSlot int              `json:"max_reservations_per_slot"`
	RequirePayment         bool             `json:"require_payment"`
	Payment                PaymentSettings  `json:"payment_settings"`
}

// PaymentSettings deposit pricing and refund configuration
type PaymentSettings struct {
	BaseAmount        float64          `json:"base_payment_amount"`
	PartySizePricing  []PartySizeTier  `json:"party_size_pricing"`
	PeakHoursPremium  float64          `json:"peak_hours_premium"`
	WeekendPremium    float64          `json:"weekend_premium"`
	PeakHoursStart    types.TimeString `json:"peak_hours_start"`
	PeakHoursEnd      types.TimeString `json:"peak_hours_end"`
	RefundPolicy      RefundPolicy     `json:"refund_policy"`
	RefundHoursBefore int              `json:"refund_hours_before"`

	// Хранятся, но пока нигде не применяются
	ChargeNoShow      bool             `json:"charge_no_show"`
	NoShowChargeType  NoShowChargeType `json:"no_show_charge_type"`
	NoShowChargeValue float64          `json:"no_show_charge_value"`
}

// PartySizeTier flat deposit for a party-size range; overrides the base amount
type PartySizeTier struct {
	MinParty int     `json:"minParty"`
	MaxParty int     `json:"maxParty"`
	Amount   float64 `json:"amount"`
}

// Contains returns true if the party size falls into the tier range (inclusive)
func (t PartySizeTier) Contains(partySize int) bool {
	return t.MinParty <= partySize && partySize <= t.MaxParty
}

// ManagerSettings dashboard preferences of the restaurant manager
type ManagerSettings struct {
	Timezone             string `json:"timezone"`
	ShowAvgPartySize     bool   `json:"show_avg_party_size"`
	ShowPeakHour         bool   `json:"show_peak_hour"`
	ShowCancellationRate bool   `json:"show_cancellation_rate"`
	ShowThisWeek         bool   `json:"show_this_week"`
}

// Location returns the restaurant timezone, UTC when unknown
func (m ManagerSettings) Location() *time.Location {
	if m.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PricingPolicy policy used by the deposit calculator and refund resolver
type PricingPolicy struct {
	RequirePayment    bool
	BaseAmount        float64
	PartySizeTiers    []PartySizeTier
	PeakPremium       float64
	PeakStart         types.TimeString
	PeakEnd           types.TimeString
	WeekendPremium    float64
	RefundPolicy      RefundPolicy
	RefundHoursBefore int
}

// PricingPolicy builds the pricing policy from the persisted reservation settings
func (r ReservationSettings) PricingPolicy() PricingPolicy {
	return PricingPolicy{
		RequirePayment:    r.RequirePayment,
		BaseAmount:        r.Payment.BaseAmount,
		PartySizeTiers:    r.Payment.PartySizePricing,
		PeakPremium:       r.Payment.PeakHoursPremium,
		PeakStart:         r.Payment.PeakHoursStart,
		PeakEnd:           r.Payment.PeakHoursEnd,
		WeekendPremium:    r.Payment.WeekendPremium,
		RefundPolicy:      r.Payment.RefundPolicy,
		RefundHoursBefore: r.Payment.RefundHoursBefore,
	}
}

// DefaultSettings settings used when the restaurant has never saved any
func DefaultSettings(restaurantID int64) *Settings {
	return &Settings{
		RestaurantID: restaurantID,
		Reservation: ReservationSettings{
			LeadTimeHours:          DefaultLeadTimeHours,
			CutoffTime:             DefaultCutoffTime,
			AllowSpecialNotes:      true,
			SpecialOccasions:       []string{},
			MaxReservationsPerSlot: DefaultMaxReservationsPerSlot,
			Payment: PaymentSettings{
				PartySizePricing:  []PartySizeTier{},
				PeakHoursStart:    DefaultPeakHoursStart,
				PeakHoursEnd:      DefaultPeakHoursEnd,
				RefundPolicy:      DefaultRefundPolicy,
				RefundHoursBefore: DefaultRefundHoursBefore,
				NoShowChargeType:  DefaultNoShowChargeType,
			},
		},
		Manager: ManagerSettings{
			Timezone:             DefaultTimezone,
			ShowAvgPartySize:     true,
			ShowPeakHour:         true,
			ShowCancellationRate: true,
			ShowThisWeek:         true,
		},
	}
}
