package assign_table

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
	waitlistRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

// UseCase use case посадки гостей за стол
type UseCase struct {
	tableRepo       TableRepository
	waitlistRepo    WaitlistRepository
	reservationRepo ReservationRepository
	managerRepo     ManagerRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tableRepo TableRepository,
	waitlistRepo WaitlistRepository,
	reservationRepo ReservationRepository,
	managerRepo ManagerRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tableRepo:       tableRepo,
		waitlistRepo:    waitlistRepo,
		reservationRepo: reservationRepo,
		managerRepo:     managerRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// seating загруженная запись, которую сажают
type seating struct {
	partySize int
	seatable  bool
}

// Execute сажает гостей за стол.
// Использует сериализуемую транзакцию и условные UPDATE: из двух параллельных
// посадок за один стол проходит ровно одна, вторая получает ErrAssignmentConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignTable: restaurant=%d, %s id=%d -> table=%d by user=%d",
		req.RestaurantID, req.EntryType, req.EntryID, req.TableID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignTable: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права
	ok, err := uc.managerRepo.IsManager(ctx, req.RestaurantID, req.UserID)
	if err != nil {
		uc.logger.Error("AssignTable: failed to check manager: %v", err)
		return nil, fmt.Errorf("%w: check manager: %v", ErrCollaboratorUnavailable, err)
	}
	if !ok {
		uc.logger.Warn("AssignTable: user=%d is not a manager of restaurant=%d", req.UserID, req.RestaurantID)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()
	var table *domain.Table
	var entry seating

	// 3. Всё остальное в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем запись с блокировкой (FOR UPDATE)
		entry, err = uc.loadEntry(txCtx, req)
		if err != nil {
			return err
		}
		if !entry.seatable {
			return fmt.Errorf("%w: %s id=%d is no longer waiting", ErrAssignmentConflict, req.EntryType, req.EntryID)
		}

		// 3.2. Загружаем стол с блокировкой
		table, err = uc.tableRepo.GetByID(txCtx, req.RestaurantID, req.TableID)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		// 3.3. Перепроверяем стол под блокировкой
		party := domain.Party{PartySize: entry.partySize, RequestedTime: now}
		if !rules.IsTableEligible(table, party) {
			if !table.Fits(party.PartySize) {
				return fmt.Errorf("%w: table %d has %d seats, party of %d",
					ErrTableTooSmall, table.ID, table.Seats, party.PartySize)
			}
			return fmt.Errorf("%w: table %d is %s", ErrAssignmentConflict, table.ID, table.Status)
		}

		// 3.4. Условные обновления: 0 строк означает, что кто-то успел раньше
		if err := uc.tableRepo.Occupy(txCtx, req.RestaurantID, req.TableID, party.PartySize); err != nil {
			if errors.Is(err, tableRepo.ErrTableNotAvailable) {
				return fmt.Errorf("%w: table %d was taken", ErrAssignmentConflict, req.TableID)
			}
			return err
		}

		return uc.markSeated(txCtx, req, now)
	})

	if err != nil {
		return nil, uc.classify(req, err)
	}

	uc.metrics.IncAssignment(outcomeSeated)
	uc.logger.Info("AssignTable: seated %s id=%d (party=%d) at table=%d",
		req.EntryType, req.EntryID, entry.partySize, req.TableID)

	return &Response{
		EntryType: req.EntryType,
		EntryID:   req.EntryID,
		TableID:   table.ID,
		TableName: table.Name,
		PartySize: entry.partySize,
		SeatedAt:  now,
	}, nil
}

func (uc *UseCase) loadEntry(ctx context.Context, req *Request) (seating, error) {
	switch req.EntryType {
	case EntryWaitlist:
		e, err := uc.waitlistRepo.GetByID(ctx, req.RestaurantID, req.EntryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return seating{}, ErrEntryNotFound
			}
			return seating{}, err
		}
		return seating{partySize: e.PartySize, seatable: e.IsWaiting()}, nil
	default:
		r, err := uc.reservationRepo.GetByID(ctx, req.RestaurantID, req.EntryID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return seating{}, ErrEntryNotFound
			}
			return seating{}, err
		}
		return seating{partySize: r.PartySize, seatable: r.CanBeSeated()}, nil
	}
}

func (uc *UseCase) markSeated(ctx context.Context, req *Request, now time.Time) error {
	var err error
	if req.EntryType == EntryWaitlist {
		err = uc.waitlistRepo.MarkSeated(ctx, req.RestaurantID, req.EntryID, req.TableID, now)
	} else {
		err = uc.reservationRepo.MarkSeated(ctx, req.RestaurantID, req.EntryID, req.TableID)
	}

	if errors.Is(err, waitlistRepo.ErrEntryNotWaiting) || errors.Is(err, reservationRepo.ErrCannotSeat) {
		return fmt.Errorf("%w: %s id=%d was seated concurrently", ErrAssignmentConflict, req.EntryType, req.EntryID)
	}
	return err
}

// classify приводит ошибку транзакции к ошибкам use case и пишет метрику
func (uc *UseCase) classify(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrAssignmentConflict):
		uc.metrics.IncAssignment(outcomeConflict)
		uc.logger.Warn("AssignTable: conflict for table=%d: %v", req.TableID, err)
		return err
	case errors.Is(err, txmanager.ErrSerialization):
		// Postgres отклонил одну из параллельных транзакций
		uc.metrics.IncAssignment(outcomeConflict)
		uc.logger.Warn("AssignTable: serialization failure for table=%d: %v", req.TableID, err)
		return fmt.Errorf("%w: %v", ErrAssignmentConflict, err)
	case errors.Is(err, ErrEntryNotFound), errors.Is(err, ErrTableNotFound), errors.Is(err, ErrTableTooSmall):
		uc.metrics.IncAssignment(outcomeRejected)
		uc.logger.Warn("AssignTable: rejected: %v", err)
		return err
	default:
		uc.metrics.IncAssignment(outcomeError)
		uc.logger.Error("AssignTable: failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
	}
}
