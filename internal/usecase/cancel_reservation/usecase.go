package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
)

// UseCase use case отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	settings        SettingsProvider
	managerRepo     ManagerRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	settings SettingsProvider,
	managerRepo ManagerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		settings:        settings,
		managerRepo:     managerRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет бронирование и фиксирует, положен ли возврат депозита.
// Возврат возможен только для оплаченного депозита; решение принимает политика
// возврата ресторана на момент отмены.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: restaurant=%d reservation=%d by user=%d",
		req.RestaurantID, req.ReservationID, req.UserID)

	ok, err := uc.managerRepo.IsManager(ctx, req.RestaurantID, req.UserID)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to check manager: %v", err)
		return nil, fmt.Errorf("%w: check manager: %v", ErrCollaboratorUnavailable, err)
	}
	if !ok {
		uc.logger.Warn("CancelReservation: user=%d is not a manager of restaurant=%d", req.UserID, req.RestaurantID)
		return nil, ErrAccessDenied
	}

	// Настройки читаются до транзакции: они идут через кэш
	settings, err := uc.settings.Get(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: get settings: %v", ErrCollaboratorUnavailable, err)
	}
	policy := settings.Reservation.PricingPolicy()

	now := uc.timeProvider.Now()
	var resp *Response

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.RestaurantID, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: get reservation: %v", ErrCollaboratorUnavailable, err)
		}

		if !reservation.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, reservation.Status)
		}

		refund := reservation.DepositPaid && rules.IsRefundEligible(policy, reservation.ReservationTime, now)

		if err := uc.reservationRepo.Cancel(txCtx, req.RestaurantID, req.ReservationID, refund, now); err != nil {
			if errors.Is(err, reservationRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: cancel: %v", ErrCollaboratorUnavailable, err)
		}

		resp = &Response{
			ReservationID:  reservation.ID,
			Status:         string(domain.ReservationCancelled),
			DepositAmount:  reservation.DepositAmount,
			DepositPaid:    reservation.DepositPaid,
			RefundEligible: refund,
			CancelledAt:    now,
		}
		if refund {
			resp.RefundAmount = reservation.DepositAmount
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCollaboratorUnavailable) {
			uc.logger.Error("CancelReservation: %v", err)
			return nil, err
		}
		if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrCannotCancel) {
			uc.logger.Warn("CancelReservation: %v", err)
			return nil, err
		}
		uc.logger.Error("CancelReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
	}

	uc.logger.Info("CancelReservation: reservation=%d cancelled, refund=%t (%s)",
		req.ReservationID, resp.RefundEligible, policy.RefundPolicy)

	return resp, nil
}
