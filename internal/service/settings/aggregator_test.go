package settings

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

func build(t *testing.T, guest models.RawGuestSettings, payment models.RawPaymentSettings, manager models.RawManagerSettings) (*BuildResult, error) {
	t.Helper()
	return ValidateAndBuild(1, guest, payment, manager, nil, nil)
}

func TestValidateAndBuild_BlankLeadTimeBecomesDefault(t *testing.T) {
	var req models.SaveSettingsRequest
	body := `{
		"reservation_settings": {"lead_time_hours": "", "cutoff_time": "", "max_reservations_per_slot": null},
		"payment_settings": {"refund_hours_before": "abc"},
		"manager_settings": {}
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	result, err := build(t, req.ReservationSettings, req.PaymentSettings, req.ManagerSettings)
	require.NoError(t, err)

	r := result.Settings.Reservation
	assert.Equal(t, 2, r.LeadTimeHours)
	assert.Equal(t, types.TimeString("21:00"), r.CutoffTime)
	assert.Equal(t, 4, r.MaxReservationsPerSlot)
	assert.Equal(t, 24, r.Payment.RefundHoursBefore)
	assert.Equal(t, types.TimeString("19:00"), r.Payment.PeakHoursStart)
	assert.Equal(t, types.TimeString("21:00"), r.Payment.PeakHoursEnd)
	assert.Equal(t, domain.RefundPolicyRefundable, r.Payment.RefundPolicy)
	assert.Equal(t, domain.NoShowChargeFixed, r.Payment.NoShowChargeType)
	assert.Equal(t, "UTC", result.Settings.Manager.Timezone)

	// В хранимой форме нет пустых значений
	stored, err := json.Marshal(result.Settings.Reservation)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"lead_time_hours":2`)
	assert.Contains(t, string(stored), `"cutoff_time":"21:00"`)
	assert.Contains(t, string(stored), `"special_occasions":[]`)
	assert.Contains(t, string(stored), `"party_size_pricing":[]`)
}

func TestValidateAndBuild_ParsesLooseValues(t *testing.T) {
	guest := models.RawGuestSettings{
		LeadTimeHours:          types.NewLooseNumber("6"),
		CutoffTime:             "22:30:00",
		AutoConfirm:            types.NewLooseBool(true),
		AllowSpecialNotes:      types.NewLooseBool(false),
		SpecialOccasions:       []string{" Birthday ", "birthday", "", "Anniversary"},
		MaxReservationsPerSlot: types.NewLooseNumber("10"),
		RequirePayment:         types.NewLooseBool(true),
	}
	payment := models.RawPaymentSettings{
		BaseAmount: types.NewLooseNumber("10.50"),
		PartySizePricing: []models.RawPartySizeTier{
			{MinParty: types.NewLooseNumber("2"), MaxParty: types.NewLooseNumber("4"), Amount: types.NewLooseNumber("20")},
			{MinParty: types.NewLooseNumber("5"), MaxParty: types.NewLooseNumber("8"), Amount: types.NewLooseNumber("35")},
		},
		PeakHoursPremium:  types.NewLooseNumber("5"),
		WeekendPremium:    types.NewLooseNumber("10"),
		PeakHoursStart:    "18:00",
		PeakHoursEnd:      "22:00",
		RefundPolicy:      "conditional",
		RefundHoursBefore: types.NewLooseNumber("48"),
		ChargeNoShow:      types.NewLooseBool(true),
		NoShowChargeType:  "percentage",
		NoShowChargeValue: types.NewLooseNumber("50"),
	}
	manager := models.RawManagerSettings{
		Timezone:     "Europe/Moscow",
		ShowPeakHour: types.NewLooseBool(false),
	}

	result, err := build(t, guest, payment, manager)
	require.NoError(t, err)

	r := result.Settings.Reservation
	assert.Equal(t, 6, r.LeadTimeHours)
	assert.Equal(t, types.TimeString("22:30"), r.CutoffTime)
	assert.True(t, r.AutoConfirm)
	assert.False(t, r.AllowSpecialNotes)
	assert.Equal(t, []string{"Birthday", "Anniversary"}, r.SpecialOccasions)
	assert.Equal(t, 10, r.MaxReservationsPerSlot)
	assert.True(t, r.RequirePayment)

	p := r.Payment
	assert.Equal(t, 10.5, p.BaseAmount)
	assert.Equal(t, []domain.PartySizeTier{{MinParty: 2, MaxParty: 4, Amount: 20}, {MinParty: 5, MaxParty: 8, Amount: 35}}, p.PartySizePricing)
	assert.Equal(t, domain.RefundPolicyConditional, p.RefundPolicy)
	assert.Equal(t, 48, p.RefundHoursBefore)
	assert.True(t, p.ChargeNoShow)
	assert.Equal(t, domain.NoShowChargePercentage, p.NoShowChargeType)
	assert.Equal(t, 50.0, p.NoShowChargeValue)

	assert.Equal(t, "Europe/Moscow", result.Settings.Manager.Timezone)
	assert.False(t, result.Settings.Manager.ShowPeakHour)
	assert.True(t, result.Settings.Manager.ShowThisWeek)
}

func TestValidateAndBuild_NonFiniteMoneyBecomesZero(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "+Infinity", "-Inf"} {
		t.Run(raw, func(t *testing.T) {
			payment := models.RawPaymentSettings{
				BaseAmount:       types.NewLooseNumber(raw),
				PeakHoursPremium: types.NewLooseNumber(raw),
				WeekendPremium:   types.NewLooseNumber(raw),
				PartySizePricing: []models.RawPartySizeTier{
					{MinParty: types.NewLooseNumber("2"), MaxParty: types.NewLooseNumber("4"), Amount: types.NewLooseNumber(raw)},
				},
				NoShowChargeValue: types.NewLooseNumber(raw),
			}

			result, err := build(t, models.RawGuestSettings{}, payment, models.RawManagerSettings{})
			require.NoError(t, err)

			p := result.Settings.Reservation.Payment
			assert.Zero(t, p.BaseAmount)
			assert.Zero(t, p.PeakHoursPremium)
			assert.Zero(t, p.WeekendPremium)
			assert.Zero(t, p.NoShowChargeValue)
			require.Len(t, p.PartySizePricing, 1)
			assert.Zero(t, p.PartySizePricing[0].Amount)

			_, err = json.Marshal(result.Settings.Reservation)
			assert.NoError(t, err)
		})
	}
}

func TestValidateAndBuild_FractionalIntegersBecomeDefault(t *testing.T) {
	guest := models.RawGuestSettings{
		LeadTimeHours:          types.NewLooseNumber("2.9"),
		MaxReservationsPerSlot: types.NewLooseNumber("6.0"),
	}
	payment := models.RawPaymentSettings{RefundHoursBefore: types.NewLooseNumber("12.5")}

	result, err := build(t, guest, payment, models.RawManagerSettings{})
	require.NoError(t, err)

	r := result.Settings.Reservation
	assert.Equal(t, domain.DefaultLeadTimeHours, r.LeadTimeHours)
	assert.Equal(t, 6, r.MaxReservationsPerSlot)
	assert.Equal(t, domain.DefaultRefundHoursBefore, r.Payment.RefundHoursBefore)
}

func TestValidateAndBuild_FractionalTierBoundIsRejected(t *testing.T) {
	payment := models.RawPaymentSettings{
		PartySizePricing: []models.RawPartySizeTier{
			{MinParty: types.NewLooseNumber("2.5"), MaxParty: types.NewLooseNumber("4"), Amount: types.NewLooseNumber("10")},
		},
	}

	_, err := build(t, models.RawGuestSettings{}, payment, models.RawManagerSettings{})
	var vErr *rules.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "party_size_pricing[0].minParty", vErr.Field)
}

func TestValidateAndBuild_HardFailures(t *testing.T) {
	tests := []struct {
		name    string
		payment models.RawPaymentSettings
		manager models.RawManagerSettings
		field   string
	}{
		{
			name:    "negative base amount",
			payment: models.RawPaymentSettings{BaseAmount: types.NewLooseNumber("-1")},
			field:   "base_payment_amount",
		},
		{
			name:    "peak start after end",
			payment: models.RawPaymentSettings{PeakHoursStart: "22:00", PeakHoursEnd: "20:00"},
			field:   "peak_hours_end",
		},
		{
			name:    "peak start equals end",
			payment: models.RawPaymentSettings{PeakHoursStart: "20:00", PeakHoursEnd: "20:00"},
			field:   "peak_hours_end",
		},
		{
			name: "tier min below one",
			payment: models.RawPaymentSettings{PartySizePricing: []models.RawPartySizeTier{
				{MinParty: types.NewLooseNumber("0"), MaxParty: types.NewLooseNumber("4"), Amount: types.NewLooseNumber("10")},
			}},
			field: "party_size_pricing[0].minParty",
		},
		{
			name: "tier max below min",
			payment: models.RawPaymentSettings{PartySizePricing: []models.RawPartySizeTier{
				{MinParty: types.NewLooseNumber("2"), MaxParty: types.NewLooseNumber("4"), Amount: types.NewLooseNumber("10")},
				{MinParty: types.NewLooseNumber("6"), MaxParty: types.NewLooseNumber("5"), Amount: types.NewLooseNumber("10")},
			}},
			field: "party_size_pricing[1].maxParty",
		},
		{
			name: "tier negative amount",
			payment: models.RawPaymentSettings{PartySizePricing: []models.RawPartySizeTier{
				{MinParty: types.NewLooseNumber("2"), MaxParty: types.NewLooseNumber("4"), Amount: types.NewLooseNumber("-5")},
			}},
			field: "party_size_pricing[0].amount",
		},
		{
			name:    "unknown refund policy",
			payment: models.RawPaymentSettings{RefundPolicy: "sometimes"},
			field:   "refund_policy",
		},
		{
			name:    "unknown no-show type",
			payment: models.RawPaymentSettings{NoShowChargeType: "double"},
			field:   "no_show_charge_type",
		},
		{
			name:    "no-show percentage above 100",
			payment: models.RawPaymentSettings{NoShowChargeType: "percentage", NoShowChargeValue: types.NewLooseNumber("150")},
			field:   "no_show_charge_value",
		},
		{
			name:    "unknown timezone",
			manager: models.RawManagerSettings{Timezone: "Mars/Olympus"},
			field:   "timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, models.RawGuestSettings{}, tt.payment, tt.manager)
			require.ErrorIs(t, err, rules.ErrValidation)

			var vErr *rules.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateAndBuild_NoShowFixedAbove100IsAllowed(t *testing.T) {
	result, err := build(t, models.RawGuestSettings{}, models.RawPaymentSettings{
		NoShowChargeType:  "fixed",
		NoShowChargeValue: types.NewLooseNumber("150"),
	}, models.RawManagerSettings{})
	require.NoError(t, err)
	assert.Equal(t, 150.0, result.Settings.Reservation.Payment.NoShowChargeValue)
}

func existingSlots() []domain.TimeSlot {
	return []domain.TimeSlot{
		{ID: 1, RestaurantID: 1, Weekday: time.Friday, StartTime: "18:00", EndTime: "19:00", MaxCovers: 20, IsActive: true},
		{ID: 2, RestaurantID: 1, Weekday: time.Friday, StartTime: "19:00", EndTime: "20:00", MaxCovers: 20, IsActive: true},
	}
}

func TestValidateAndBuild_SlotEdits(t *testing.T) {
	edits := []models.SlotEdit{
		{Weekday: int(time.Friday), StartTime: "20:00", EndTime: "21:00", MaxCovers: 10},
		{ID: ptr.Ptr(int64(2)), Weekday: int(time.Friday), StartTime: "19:30", EndTime: "20:30", MaxCovers: 15},
		{ID: ptr.Ptr(int64(1)), Delete: true},
		// Диапазон удаленного слота снова свободен
		{Weekday: int(time.Friday), StartTime: "18:00", EndTime: "19:00", MaxCovers: 12},
	}

	result, err := ValidateAndBuild(1, models.RawGuestSettings{}, models.RawPaymentSettings{}, models.RawManagerSettings{}, edits, existingSlots())
	require.NoError(t, err)

	require.Len(t, result.SlotCreates, 2)
	assert.Equal(t, types.TimeString("20:00"), result.SlotCreates[0].StartTime)
	assert.True(t, result.SlotCreates[0].IsActive)
	assert.Equal(t, int64(1), result.SlotCreates[0].RestaurantID)

	require.Len(t, result.SlotUpdates, 1)
	assert.Equal(t, int64(2), result.SlotUpdates[0].ID)
	assert.Equal(t, types.TimeString("19:30"), result.SlotUpdates[0].StartTime)

	assert.Equal(t, []int64{1}, result.SlotDeletes)
}

func TestValidateAndBuild_SlotDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		edits []models.SlotEdit
	}{
		{
			name: "duplicate of existing",
			edits: []models.SlotEdit{
				{Weekday: int(time.Friday), StartTime: "18:00", EndTime: "19:00", MaxCovers: 10},
			},
		},
		{
			name: "duplicate within the batch",
			edits: []models.SlotEdit{
				{Weekday: int(time.Monday), StartTime: "12:00", EndTime: "13:00", MaxCovers: 10},
				{Weekday: int(time.Monday), StartTime: "12:00", EndTime: "13:00", MaxCovers: 8},
			},
		},
		{
			name: "update onto another slot range",
			edits: []models.SlotEdit{
				{ID: ptr.Ptr(int64(2)), Weekday: int(time.Friday), StartTime: "18:00", EndTime: "19:00", MaxCovers: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndBuild(1, models.RawGuestSettings{}, models.RawPaymentSettings{}, models.RawManagerSettings{}, tt.edits, existingSlots())
			assert.ErrorIs(t, err, rules.ErrDuplicateSlot)
		})
	}
}

func TestValidateAndBuild_SlotShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		edit models.SlotEdit
	}{
		{name: "end before start", edit: models.SlotEdit{Weekday: 1, StartTime: "20:00", EndTime: "19:00", MaxCovers: 5}},
		{name: "bad time", edit: models.SlotEdit{Weekday: 1, StartTime: "25:00", EndTime: "26:00", MaxCovers: 5}},
		{name: "no covers", edit: models.SlotEdit{Weekday: 1, StartTime: "18:00", EndTime: "19:00"}},
		{name: "weekday out of range", edit: models.SlotEdit{Weekday: 9, StartTime: "18:00", EndTime: "19:00", MaxCovers: 5}},
		{name: "unknown id", edit: models.SlotEdit{ID: ptr.Ptr(int64(99)), Weekday: 1, StartTime: "18:00", EndTime: "19:00", MaxCovers: 5}},
		{name: "delete unknown", edit: models.SlotEdit{ID: ptr.Ptr(int64(99)), Delete: true}},
		{name: "date on other weekday", edit: models.SlotEdit{Weekday: 1, StartTime: "18:00", EndTime: "19:00", MaxCovers: 5, SpecificDate: ptr.Ptr("2025-10-18")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndBuild(1, models.RawGuestSettings{}, models.RawPaymentSettings{}, models.RawManagerSettings{},
				[]models.SlotEdit{tt.edit}, existingSlots())
			assert.ErrorIs(t, err, rules.ErrValidation)
		})
	}
}
