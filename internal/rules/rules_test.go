package rules

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

func slot(id int64, weekday time.Weekday, start, end string, active bool) domain.TimeSlot {
	return domain.TimeSlot{
		ID:        id,
		Weekday:   weekday,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
		MaxCovers: 20,
		IsActive:  active,
	}
}

func TestValidateTimeSlot(t *testing.T) {
	existing := []domain.TimeSlot{
		slot(1, time.Friday, "18:00", "19:00", true),
		slot(2, time.Friday, "20:00", "21:00", false),
		slot(3, time.Saturday, "18:00", "19:00", true),
	}

	tests := []struct {
		name      string
		candidate domain.TimeSlot
		excludeID *int64
		wantDup   bool
	}{
		{
			name:      "identical range same weekday",
			candidate: slot(0, time.Friday, "18:00", "19:00", true),
			wantDup:   true,
		},
		{
			name:      "overlapping range is accepted",
			candidate: slot(0, time.Friday, "18:30", "19:30", true),
		},
		{
			name:      "same range other weekday",
			candidate: slot(0, time.Sunday, "18:00", "19:00", true),
		},
		{
			name:      "identical to inactive slot",
			candidate: slot(0, time.Friday, "20:00", "21:00", true),
		},
		{
			name:      "editing the slot itself",
			candidate: slot(1, time.Friday, "18:00", "19:00", true),
			excludeID: ptr.Ptr(int64(1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeSlot(tt.candidate, existing, tt.excludeID)
			if !tt.wantDup {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrDuplicateSlot)
			var dup *DuplicateSlotError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tt.candidate.Weekday, dup.Weekday)
			assert.Equal(t, tt.candidate.StartTime, dup.StartTime)
			assert.Equal(t, tt.candidate.EndTime, dup.EndTime)
		})
	}
}

func TestValidateTimeSlot_OrderIndependent(t *testing.T) {
	existing := []domain.TimeSlot{
		slot(1, time.Monday, "12:00", "13:00", true),
		slot(2, time.Monday, "13:00", "14:00", true),
		slot(3, time.Tuesday, "12:00", "13:00", true),
		slot(4, time.Monday, "19:00", "20:00", false),
		slot(5, time.Monday, "18:00", "20:00", true),
	}
	dup := slot(0, time.Monday, "13:00", "14:00", true)
	ok := slot(0, time.Monday, "19:00", "20:00", true)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.TimeSlot(nil), existing...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		assert.ErrorIs(t, ValidateTimeSlot(dup, shuffled, nil), ErrDuplicateSlot)
		assert.NoError(t, ValidateTimeSlot(ok, shuffled, nil))
	}
}

func TestCheckTimeSlotShape(t *testing.T) {
	assert.NoError(t, CheckTimeSlotShape(slot(0, time.Monday, "18:00", "19:00", true)))

	bad := slot(0, time.Monday, "19:00", "18:00", true)
	assert.ErrorIs(t, CheckTimeSlotShape(bad), ErrValidation)

	equal := slot(0, time.Monday, "19:00", "19:00", true)
	assert.ErrorIs(t, CheckTimeSlotShape(equal), ErrValidation)

	reversed := slot(0, time.Monday, "20:00", "19:00", true)
	assert.ErrorIs(t, CheckTimeSlotShape(reversed), ErrValidation)

	noCovers := slot(0, time.Monday, "18:00", "19:00", true)
	noCovers.MaxCovers = 0
	assert.ErrorIs(t, CheckTimeSlotShape(noCovers), ErrValidation)

	badDay := slot(0, time.Weekday(7), "18:00", "19:00", true)
	var vErr *ValidationError
	require.True(t, errors.As(CheckTimeSlotShape(badDay), &vErr))
	assert.Equal(t, "weekday", vErr.Field)
}

// 2025-10-15 - среда, 2025-10-18 - суббота
var (
	wednesdayNoon = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	saturday20    = time.Date(2025, 10, 18, 20, 0, 0, 0, time.UTC)
)

func TestComputeDeposit_EmptyTiers(t *testing.T) {
	policy := domain.PricingPolicy{
		RequirePayment: true,
		BaseAmount:     10,
		PeakPremium:    5,
		PeakStart:      "19:00",
		PeakEnd:        "21:00",
		WeekendPremium: 10,
	}

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{name: "weekday off-peak", at: wednesdayNoon, want: 10},
		{name: "weekday peak", at: time.Date(2025, 10, 15, 19, 30, 0, 0, time.UTC), want: 15},
		{name: "weekday peak end exclusive", at: time.Date(2025, 10, 15, 21, 0, 0, 0, time.UTC), want: 10},
		{name: "weekend off-peak", at: time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC), want: 20},
		{name: "weekend peak", at: saturday20, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeposit(policy, domain.Party{PartySize: 2, RequestedTime: tt.at})
			b := got.Breakdown
			assert.Equal(t, tt.want, got.Amount)
			assert.Equal(t, policy.BaseAmount+b.PeakAdjustment+b.WeekendAdjustment, got.Amount)
			assert.Zero(t, b.TierAdjustment)
		})
	}
}

func TestComputeDeposit_TierPrecedence(t *testing.T) {
	policy := domain.PricingPolicy{
		RequirePayment: true,
		BaseAmount:     10,
		PartySizeTiers: []domain.PartySizeTier{
			{MinParty: 2, MaxParty: 4, Amount: 20},
			{MinParty: 5, MaxParty: 8, Amount: 35},
		},
	}

	got := ComputeDeposit(policy, domain.Party{PartySize: 6, RequestedTime: wednesdayNoon})
	assert.Equal(t, 35.0, got.Amount)
	assert.Equal(t, 35.0, got.Breakdown.Base+got.Breakdown.TierAdjustment)

	// Вне всех диапазонов - базовая сумма
	got = ComputeDeposit(policy, domain.Party{PartySize: 12, RequestedTime: wednesdayNoon})
	assert.Equal(t, 10.0, got.Amount)

	// Первый подходящий тариф выигрывает при пересечении диапазонов
	policy.PartySizeTiers = append([]domain.PartySizeTier{{MinParty: 6, MaxParty: 6, Amount: 50}}, policy.PartySizeTiers...)
	got = ComputeDeposit(policy, domain.Party{PartySize: 6, RequestedTime: wednesdayNoon})
	assert.Equal(t, 50.0, got.Amount)
}

func TestComputeDeposit_PeakAndWeekendStack(t *testing.T) {
	policy := domain.PricingPolicy{
		RequirePayment: true,
		PeakPremium:    5,
		PeakStart:      "19:00",
		PeakEnd:        "21:00",
		WeekendPremium: 10,
	}

	got := ComputeDeposit(policy, domain.Party{PartySize: 2, RequestedTime: saturday20})
	assert.Equal(t, 15.0, got.Breakdown.PeakAdjustment+got.Breakdown.WeekendAdjustment)
	assert.Equal(t, 15.0, got.Amount)
}

func TestComputeDeposit_FlooredAtZero(t *testing.T) {
	policy := domain.PricingPolicy{
		RequirePayment: true,
		BaseAmount:     -30,
		WeekendPremium: 10,
	}

	got := ComputeDeposit(policy, domain.Party{PartySize: 2, RequestedTime: saturday20})
	assert.Equal(t, 0.0, got.Amount)
}

func TestComputeDeposit_Idempotent(t *testing.T) {
	policy := domain.PricingPolicy{RequirePayment: true, BaseAmount: 12.345}
	party := domain.Party{PartySize: 3, RequestedTime: wednesdayNoon}

	first := ComputeDeposit(policy, party)
	second := ComputeDeposit(policy, party)
	assert.Equal(t, first, second)
	assert.Equal(t, 12.35, first.Amount)
}

func TestIsRefundEligible(t *testing.T) {
	reservation := time.Date(2025, 10, 18, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy domain.RefundPolicy
		cancel time.Time
		want   bool
	}{
		{name: "refundable", policy: domain.RefundPolicyRefundable, cancel: reservation.Add(-time.Minute), want: true},
		{name: "non-refundable", policy: domain.RefundPolicyNonRefundable, cancel: reservation.Add(-72 * time.Hour), want: false},
		{name: "conditional exactly on boundary", policy: domain.RefundPolicyConditional, cancel: reservation.Add(-24 * time.Hour), want: true},
		{name: "conditional one minute late", policy: domain.RefundPolicyConditional, cancel: reservation.Add(-(23*time.Hour + 59*time.Minute)), want: false},
		{name: "conditional well ahead", policy: domain.RefundPolicyConditional, cancel: reservation.Add(-48 * time.Hour), want: true},
		{name: "conditional after reservation", policy: domain.RefundPolicyConditional, cancel: reservation.Add(time.Hour), want: false},
		{name: "unknown policy", policy: "", cancel: reservation.Add(-48 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := domain.PricingPolicy{RefundPolicy: tt.policy, RefundHoursBefore: 24}
			assert.Equal(t, tt.want, IsRefundEligible(policy, reservation, tt.cancel))
		})
	}
}

func TestEligibleTables(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Name: "T1", Seats: 2, Status: domain.TableAvailable},
		{ID: 2, Name: "T2", Seats: 6, Status: domain.TableAvailable},
		{ID: 3, Name: "T3", Seats: 8, Status: domain.TableOccupied},
		{ID: 4, Name: "T4", Seats: 4, Status: domain.TableAvailable},
		{ID: 5, Name: "T5", Seats: 10, Status: domain.TableCleaning},
		{ID: 6, Name: "T6", Seats: 4, Status: domain.TableMaintenance},
	}

	got := EligibleTables(tables, domain.Party{PartySize: 4})
	ids := make([]int64, 0, len(got))
	for _, tbl := range got {
		ids = append(ids, tbl.ID)
	}

	// Порядок входного списка сохраняется, сортировки по размеру нет
	if diff := cmp.Diff([]int64{2, 4}, ids); diff != "" {
		t.Errorf("eligible tables mismatch (-want +got):\n%s", diff)
	}
}

func TestEligibleTables_AnyOrdering(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Seats: 2, Status: domain.TableAvailable},
		{ID: 2, Seats: 6, Status: domain.TableAvailable},
		{ID: 3, Seats: 8, Status: domain.TableOccupied},
		{ID: 4, Seats: 4, Status: domain.TableAvailable},
		{ID: 5, Seats: 3, Status: domain.TableAvailable},
	}
	party := domain.Party{PartySize: 3}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.Table(nil), tables...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		want := make([]int64, 0)
		for _, tbl := range shuffled {
			if tbl.Status == domain.TableAvailable && tbl.Seats >= party.PartySize {
				want = append(want, tbl.ID)
			}
		}

		got := make([]int64, 0)
		for _, tbl := range EligibleTables(shuffled, party) {
			assert.Equal(t, domain.TableAvailable, tbl.Status)
			assert.GreaterOrEqual(t, tbl.Seats, party.PartySize)
			got = append(got, tbl.ID)
		}

		assert.Equal(t, want, got)
	}
}

func TestEligibleTables_NoneQualify(t *testing.T) {
	got := EligibleTables([]domain.Table{{ID: 1, Seats: 2, Status: domain.TableAvailable}}, domain.Party{PartySize: 5})
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = EligibleTables(nil, domain.Party{PartySize: 1})
	require.NotNil(t, got)
	assert.Empty(t, got)
}
