package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByID(ctx context.Context, restaurantID, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, restaurantID, id)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

func (m *mockReservationRepo) Cancel(ctx context.Context, restaurantID, id int64, refundEligible bool, cancelledAt time.Time) error {
	return m.Called(ctx, restaurantID, id, refundEligible, cancelledAt).Error(0)
}

type stubSettings struct{ policy domain.RefundPolicy }

func (s stubSettings) Get(context.Context, int64) (*domain.Settings, error) {
	settings := domain.DefaultSettings(5)
	settings.Reservation.Payment.RefundPolicy = s.policy
	settings.Reservation.Payment.RefundHoursBefore = 24
	return settings, nil
}

type stubManagers struct{}

func (stubManagers) IsManager(_ context.Context, _, userID int64) (bool, error) {
	return userID == 100, nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var now = time.Date(2025, 10, 17, 20, 0, 0, 0, time.UTC)

func newUseCase(repo *mockReservationRepo, policy domain.RefundPolicy) *UseCase {
	uc := NewUseCase(repo, stubSettings{policy: policy}, stubManagers{}, passTx{}, logger.Nop())
	uc.timeProvider = fixedTime(now)
	return uc
}

func TestUseCase_Execute_RefundDecision(t *testing.T) {
	tests := []struct {
		name       string
		policy     domain.RefundPolicy
		paid       bool
		notice     time.Duration
		wantRefund bool
	}{
		{name: "refundable", policy: domain.RefundPolicyRefundable, paid: true, notice: time.Hour, wantRefund: true},
		{name: "non-refundable", policy: domain.RefundPolicyNonRefundable, paid: true, notice: 72 * time.Hour},
		{name: "conditional exactly 24h", policy: domain.RefundPolicyConditional, paid: true, notice: 24 * time.Hour, wantRefund: true},
		{name: "conditional 23h59m", policy: domain.RefundPolicyConditional, paid: true, notice: 23*time.Hour + 59*time.Minute},
		{name: "deposit not paid", policy: domain.RefundPolicyRefundable, paid: false, notice: 72 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockReservationRepo{}
			repo.On("GetByID", mock.Anything, int64(5), int64(30)).Return(&domain.Reservation{
				ID:              30,
				RestaurantID:    5,
				PartySize:       2,
				Status:          domain.ReservationConfirmed,
				ReservationTime: now.Add(tt.notice),
				DepositAmount:   25,
				DepositPaid:     tt.paid,
			}, nil)
			repo.On("Cancel", mock.Anything, int64(5), int64(30), tt.wantRefund, now).Return(nil).Once()

			resp, err := newUseCase(repo, tt.policy).Execute(context.Background(), &Request{
				UserID: 100, RestaurantID: 5, ReservationID: 30,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRefund, resp.RefundEligible)
			assert.Equal(t, "cancelled", resp.Status)
			if tt.wantRefund {
				assert.InDelta(t, 25.0, resp.RefundAmount, 0.001)
			} else {
				assert.Zero(t, resp.RefundAmount)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("already seated", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(30)).
			Return(&domain.Reservation{ID: 30, Status: domain.ReservationSeated}, nil)

		_, err := newUseCase(repo, domain.RefundPolicyRefundable).Execute(context.Background(), &Request{
			UserID: 100, RestaurantID: 5, ReservationID: 30,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancelled concurrently", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(30)).
			Return(&domain.Reservation{ID: 30, Status: domain.ReservationPending, ReservationTime: now.Add(time.Hour)}, nil)
		repo.On("Cancel", mock.Anything, int64(5), int64(30), false, now).Return(reservationRepo.ErrCannotCancel)

		_, err := newUseCase(repo, domain.RefundPolicyRefundable).Execute(context.Background(), &Request{
			UserID: 100, RestaurantID: 5, ReservationID: 30,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(31)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := newUseCase(repo, domain.RefundPolicyRefundable).Execute(context.Background(), &Request{
			UserID: 100, RestaurantID: 5, ReservationID: 31,
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(30)).Return(nil, errors.New("broken pipe"))

		_, err := newUseCase(repo, domain.RefundPolicyRefundable).Execute(context.Background(), &Request{
			UserID: 100, RestaurantID: 5, ReservationID: 30,
		})
		assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
	})

	t.Run("not a manager", func(t *testing.T) {
		_, err := newUseCase(&mockReservationRepo{}, domain.RefundPolicyRefundable).Execute(context.Background(), &Request{
			UserID: 7, RestaurantID: 5, ReservationID: 30,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
