package timeslots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	timeslotRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Service сервис еженедельных слотов бронирования
type Service struct {
	slotRepo    TimeSlotRepository
	managerRepo ManagerRepository
	txManager   TxManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo TimeSlotRepository, managerRepo ManagerRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		managerRepo: managerRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List возвращает активные слоты ресторана. Публичный метод.
// weekday == nil - все дни недели.
func (s *Service) List(ctx context.Context, restaurantID int64, weekday *time.Weekday) (*models.SlotListResponse, error) {
	slots, err := s.slotRepo.ListByRestaurant(ctx, restaurantID, weekday)
	if err != nil {
		s.logger.Error("List: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	resp := &models.SlotListResponse{Slots: make([]models.SlotResponse, 0, len(slots))}
	for i := range slots {
		if slots[i].IsActive {
			resp.Slots = append(resp.Slots, models.FromDomainSlot(&slots[i]))
		}
	}

	return resp, nil
}

// ListForDate возвращает активные слоты, действующие в конкретную дату:
// еженедельные слоты этого дня недели и разовые слоты на эту дату.
func (s *Service) ListForDate(ctx context.Context, restaurantID int64, date time.Time) (*models.SlotListResponse, error) {
	weekday := date.Weekday()
	slots, err := s.slotRepo.ListByRestaurant(ctx, restaurantID, &weekday)
	if err != nil {
		s.logger.Error("ListForDate: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ListForDate - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	resp := &models.SlotListResponse{Slots: make([]models.SlotResponse, 0, len(slots))}
	for i := range slots {
		if slots[i].AppliesTo(date) {
			resp.Slots = append(resp.Slots, models.FromDomainSlot(&slots[i]))
		}
	}

	return resp, nil
}

// Create создает слот. Доступно только менеджерам ресторана.
// Идентичный активный слот в тот же день недели - *rules.DuplicateSlotError.
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for restaurant=%d weekday=%d %s-%s by user=%d",
		req.RestaurantID, req.Weekday, req.StartTime, req.EndTime, req.UserID)

	if err := s.checkManager(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	slot, err := toDomainSlot(req.RestaurantID, req.SlotRequest)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.TimeSlot
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.checkDuplicate(ctx, slot, nil); err != nil {
			return err
		}

		created, err = s.slotRepo.Create(ctx, &slot)
		return s.writeError(&slot, err)
	})
	if err != nil {
		return nil, s.logResult("Create", req.RestaurantID, err)
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	resp := models.FromDomainSlot(created)
	return &resp, nil
}

// Update перезаписывает слот. Доступно только менеджерам ресторана.
func (s *Service) Update(ctx context.Context, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%d of restaurant=%d by user=%d", req.SlotID, req.RestaurantID, req.UserID)

	if err := s.checkManager(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	slot, err := toDomainSlot(req.RestaurantID, req.SlotRequest)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}
	slot.ID = req.SlotID

	var updated *domain.TimeSlot
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.slotRepo.GetByID(ctx, req.RestaurantID, req.SlotID); err != nil {
			if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - get slot: %v", ErrCollaboratorUnavailable, err)
		}

		if err := s.checkDuplicate(ctx, slot, &req.SlotID); err != nil {
			return err
		}

		updated, err = s.slotRepo.Update(ctx, &slot)
		return s.writeError(&slot, err)
	})
	if err != nil {
		return nil, s.logResult("Update", req.RestaurantID, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", updated.ID)
	resp := models.FromDomainSlot(updated)
	return &resp, nil
}

// Delete удаляет слот. Доступно только менеджерам ресторана.
func (s *Service) Delete(ctx context.Context, userID, restaurantID, slotID int64) error {
	s.logger.Info("Delete: deleting slot id=%d of restaurant=%d by user=%d", slotID, restaurantID, userID)

	if err := s.checkManager(ctx, restaurantID, userID); err != nil {
		return err
	}

	if err := s.slotRepo.Delete(ctx, restaurantID, slotID); err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", slotID)
	return nil
}

// checkDuplicate сверяет слот с остальными слотами того же дня недели
func (s *Service) checkDuplicate(ctx context.Context, slot domain.TimeSlot, excludeID *int64) error {
	weekday := slot.Weekday
	existing, err := s.slotRepo.ListByRestaurant(ctx, slot.RestaurantID, &weekday)
	if err != nil {
		return fmt.Errorf("%w: list slots: %v", ErrCollaboratorUnavailable, err)
	}
	return rules.ValidateTimeSlot(slot, existing, excludeID)
}

func (s *Service) writeError(slot *domain.TimeSlot, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, timeslotRepo.ErrDuplicateSlot):
		return &rules.DuplicateSlotError{Weekday: slot.Weekday, StartTime: slot.StartTime, EndTime: slot.EndTime}
	case errors.Is(err, timeslotRepo.ErrSlotNotFound):
		return ErrSlotNotFound
	default:
		return fmt.Errorf("%w: write slot: %v", ErrCollaboratorUnavailable, err)
	}
}

func (s *Service) logResult(op string, restaurantID int64, err error) error {
	switch {
	case errors.Is(err, rules.ErrDuplicateSlot), errors.Is(err, ErrSlotNotFound):
		s.logger.Warn("%s: restaurant=%d: %v", op, restaurantID, err)
		return err
	case errors.Is(err, ErrCollaboratorUnavailable):
		s.logger.Error("%s: restaurant=%d: %v", op, restaurantID, err)
		return err
	default:
		s.logger.Error("%s: restaurant=%d: %v", op, restaurantID, err)
		return fmt.Errorf("%w: %s - %v", ErrCollaboratorUnavailable, op, err)
	}
}

func (s *Service) checkManager(ctx context.Context, restaurantID, userID int64) error {
	ok, err := s.managerRepo.IsManager(ctx, restaurantID, userID)
	if err != nil {
		s.logger.Error("checkManager: repository error: %v", err)
		return fmt.Errorf("%w: checkManager - %v", ErrCollaboratorUnavailable, err)
	}
	if !ok {
		s.logger.Warn("checkManager: user=%d is not a manager of restaurant=%d", userID, restaurantID)
		return ErrAccessDenied
	}
	return nil
}

// toDomainSlot разбирает запрос и проверяет форму слота
func toDomainSlot(restaurantID int64, req models.SlotRequest) (domain.TimeSlot, error) {
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return domain.TimeSlot{}, rules.NewValidationError("startTime", "expected HH:MM")
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return domain.TimeSlot{}, rules.NewValidationError("endTime", "expected HH:MM")
	}

	slot := domain.TimeSlot{
		RestaurantID: restaurantID,
		Weekday:      time.Weekday(req.Weekday),
		StartTime:    start,
		EndTime:      end,
		MaxCovers:    req.MaxCovers,
		IsDefault:    req.IsDefault,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}

	if req.SpecificDate != nil && strings.TrimSpace(*req.SpecificDate) != "" {
		date, err := time.Parse(domain.DateFormat, strings.TrimSpace(*req.SpecificDate))
		if err != nil {
			return domain.TimeSlot{}, rules.NewValidationError("specificDate", "expected YYYY-MM-DD")
		}
		if date.Weekday() != slot.Weekday {
			return domain.TimeSlot{}, rules.NewValidationError("specificDate", "does not fall on weekday")
		}
		slot.SpecificDate = &date
	}

	if err := rules.CheckTimeSlotShape(slot); err != nil {
		return domain.TimeSlot{}, err
	}

	return slot, nil
}
