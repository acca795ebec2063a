package get_deposit_quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
)

type stubSettings struct {
	settings *domain.Settings
	err      error
}

func (s stubSettings) Get(context.Context, int64) (*domain.Settings, error) {
	return s.settings, s.err
}

func moscowSettings() *domain.Settings {
	s := domain.DefaultSettings(5)
	s.Manager.Timezone = "Europe/Moscow"
	s.Reservation.RequirePayment = true
	s.Reservation.Payment.BaseAmount = 20
	s.Reservation.Payment.PeakHoursPremium = 5
	s.Reservation.Payment.WeekendPremium = 10
	s.Reservation.Payment.PartySizePricing = []domain.PartySizeTier{
		{MinParty: 6, MaxParty: 10, Amount: 50},
	}
	s.Reservation.Payment.RefundPolicy = domain.RefundPolicyConditional
	s.Reservation.Payment.RefundHoursBefore = 24
	return s
}

func newUseCase(provider SettingsProvider) *UseCase {
	var noMetrics *metrics.Metrics
	return NewUseCase(provider, noMetrics, logger.Nop())
}

func TestUseCase_Execute_LocalTime(t *testing.T) {
	tests := []struct {
		name      string
		partySize int
		at        time.Time
		wantLocal string
		want      float64
		peak      float64
		weekend   float64
	}{
		{
			// 16:30 UTC = 19:30 в Москве, суббота
			name:      "saturday peak",
			partySize: 2,
			at:        time.Date(2025, 10, 18, 16, 30, 0, 0, time.UTC),
			wantLocal: "2025-10-18 19:30",
			want:      35,
			peak:      5,
			weekend:   10,
		},
		{
			// в UTC еще пятница, в Москве уже суббота
			name:      "weekend by restaurant clock",
			partySize: 2,
			at:        time.Date(2025, 10, 17, 22, 30, 0, 0, time.UTC),
			wantLocal: "2025-10-18 01:30",
			want:      30,
			weekend:   10,
		},
		{
			name:      "weekday off peak",
			partySize: 2,
			at:        time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
			wantLocal: "2025-10-15 12:00",
			want:      20,
		},
		{
			name:      "tier replaces base",
			partySize: 8,
			at:        time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC),
			wantLocal: "2025-10-15 12:00",
			want:      50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newUseCase(stubSettings{settings: moscowSettings()}).Execute(context.Background(), &Request{
				RestaurantID:  5,
				PartySize:     tt.partySize,
				RequestedTime: tt.at,
			})
			require.NoError(t, err)
			assert.True(t, resp.Required)
			assert.Equal(t, tt.wantLocal, resp.LocalTime)
			assert.InDelta(t, tt.want, resp.Amount, 0.001)
			require.NotNil(t, resp.Breakdown)
			assert.InDelta(t, tt.peak, resp.Breakdown.PeakAdjustment, 0.001)
			assert.InDelta(t, tt.weekend, resp.Breakdown.WeekendAdjustment, 0.001)
			assert.Equal(t, "conditional", resp.RefundPolicy)
			assert.Equal(t, 24, resp.RefundHoursBefore)
		})
	}
}

func TestUseCase_Execute_PaymentNotRequired(t *testing.T) {
	settings := moscowSettings()
	settings.Reservation.RequirePayment = false

	resp, err := newUseCase(stubSettings{settings: settings}).Execute(context.Background(), &Request{
		RestaurantID:  5,
		PartySize:     4,
		RequestedTime: time.Date(2025, 10, 18, 16, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.False(t, resp.Required)
	assert.Zero(t, resp.Amount)
	assert.Nil(t, resp.Breakdown)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	at := time.Date(2025, 10, 18, 16, 30, 0, 0, time.UTC)

	_, err := newUseCase(stubSettings{settings: moscowSettings()}).Execute(context.Background(), &Request{
		RestaurantID: 5, PartySize: 0, RequestedTime: at,
	})
	assert.ErrorIs(t, err, rules.ErrValidation)

	_, err = newUseCase(stubSettings{settings: moscowSettings()}).Execute(context.Background(), &Request{
		RestaurantID: 5, PartySize: 2,
	})
	assert.ErrorIs(t, err, rules.ErrValidation)

	_, err = newUseCase(stubSettings{err: errors.New("db down")}).Execute(context.Background(), &Request{
		RestaurantID: 5, PartySize: 2, RequestedTime: at,
	})
	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
}
