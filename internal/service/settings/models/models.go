package models

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Request модели

// Сырые настройки приходят из формы: числа могут быть строками, пустыми или null.
// Ключи совпадают с хранимой формой настроек.

// RawGuestSettings гостевые правила бронирования
type RawGuestSettings struct {
	LeadTimeHours          types.LooseNumber `json:"lead_time_hours"`
	CutoffTime             string            `json:"cutoff_time"`
	AutoConfirm            types.LooseBool   `json:"auto_confirm"`
	AllowSpecialNotes      types.LooseBool   `json:"allow_special_notes"`
	SpecialOccasions       []string          `json:"special_occasions"`
	MaxReservationsPerSlot types.LooseNumber `json:"max_reservations_per_slot"`
	RequirePayment         types.LooseBool   `json:"require_payment"`
}

// RawPartySizeTier тариф для диапазона размера компании
type RawPartySizeTier struct {
	MinParty types.LooseNumber `json:"minParty"`
	MaxParty types.LooseNumber `json:"maxParty"`
	Amount   types.LooseNumber `json:"amount"`
}

// RawPaymentSettings депозит, премии и возвраты
type RawPaymentSettings struct {
	BaseAmount        types.LooseNumber  `json:"base_payment_amount"`
	PartySizePricing  []RawPartySizeTier `json:"party_size_pricing"`
	PeakHoursPremium  types.LooseNumber  `json:"peak_hours_premium"`
	WeekendPremium    types.LooseNumber  `json:"weekend_premium"`
	PeakHoursStart    string             `json:"peak_hours_start"`
	PeakHoursEnd      string             `json:"peak_hours_end"`
	RefundPolicy      string             `json:"refund_policy"`
	RefundHoursBefore types.LooseNumber  `json:"refund_hours_before"`
	ChargeNoShow      types.LooseBool    `json:"charge_no_show"`
	NoShowChargeType  string             `json:"no_show_charge_type"`
	NoShowChargeValue types.LooseNumber  `json:"no_show_charge_value"`
}

// RawManagerSettings настройки дашборда
type RawManagerSettings struct {
	Timezone             string          `json:"timezone"`
	ShowAvgPartySize     types.LooseBool `json:"show_avg_party_size"`
	ShowPeakHour         types.LooseBool `json:"show_peak_hour"`
	ShowCancellationRate types.LooseBool `json:"show_cancellation_rate"`
	ShowThisWeek         types.LooseBool `json:"show_this_week"`
}

// SlotEdit изменение слота в составе сохранения настроек.
// ID == nil - новый слот; Delete - удалить слот с ID.
type SlotEdit struct {
	ID           *int64  `json:"id,omitempty"`
	Weekday      int     `json:"weekday"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	MaxCovers    int     `json:"maxCovers"`
	IsDefault    bool    `json:"isDefault"`
	SpecificDate *string `json:"specificDate,omitempty"` // YYYY-MM-DD
	IsActive     *bool   `json:"isActive,omitempty"`     // по умолчанию true
	Delete       bool    `json:"delete,omitempty"`
}

// SaveSettingsRequest запрос на сохранение настроек
type SaveSettingsRequest struct {
	UserID              int64              `json:"-"`
	RestaurantID        int64              `json:"-"`
	ReservationSettings RawGuestSettings   `json:"reservation_settings"`
	PaymentSettings     RawPaymentSettings `json:"payment_settings"`
	ManagerSettings     RawManagerSettings `json:"manager_settings"`
	TimeSlots           []SlotEdit         `json:"time_slots"`
}

// Response модели

// SettingsResponse настройки ресторана в хранимой форме
type SettingsResponse struct {
	RestaurantID        int64                      `json:"restaurantId"`
	ReservationSettings domain.ReservationSettings `json:"reservation_settings"`
	ManagerSettings     domain.ManagerSettings     `json:"manager_settings"`
	IsDefault           bool                       `json:"isDefault"`
	UpdatedAt           *time.Time                 `json:"updatedAt,omitempty"`
}

// SaveSettingsResponse результат сохранения
type SaveSettingsResponse struct {
	Settings     SettingsResponse `json:"settings"`
	SlotsCreated int              `json:"slotsCreated"`
	SlotsUpdated int              `json:"slotsUpdated"`
	SlotsDeleted int              `json:"slotsDeleted"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.Settings) SettingsResponse {
	resp := SettingsResponse{
		RestaurantID:        s.RestaurantID,
		ReservationSettings: s.Reservation,
		ManagerSettings:     s.Manager,
		IsDefault:           s.UpdatedAt.IsZero(),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
