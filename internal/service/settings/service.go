package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	settingsCache "github.com/m04kA/SMC-RestaurantService/internal/infra/cache/settings"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	timeslotRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

// Service сервис настроек ресторана
type Service struct {
	settingsRepo SettingsRepository
	slotRepo     TimeSlotRepository
	managerRepo  ManagerRepository
	cache        SettingsCache
	txManager    TxManager
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	slotRepo TimeSlotRepository,
	managerRepo ManagerRepository,
	cache SettingsCache,
	txManager TxManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		slotRepo:     slotRepo,
		managerRepo:  managerRepo,
		cache:        cache,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Get возвращает настройки ресторана.
// Публичный метод. Читает через кэш; если ресторан ничего не сохранял, отдает значения по умолчанию.
// Сбой Redis не ломает запрос: настройки читаются из БД.
func (s *Service) Get(ctx context.Context, restaurantID int64) (*domain.Settings, error) {
	cached, err := s.cache.Get(ctx, restaurantID)
	switch {
	case err == nil:
		s.metrics.IncSettingsCache("hit")
		return cached, nil
	case errors.Is(err, settingsCache.ErrCacheMiss):
		s.metrics.IncSettingsCache("miss")
	default:
		s.metrics.IncSettingsCache("error")
		s.logger.Warn("Get: cache read failed for restaurant=%d: %v", restaurantID, err)
	}

	settings, err := s.settingsRepo.Get(ctx, restaurantID)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Info("Get: restaurant=%d has no saved settings, using defaults", restaurantID)
		settings = domain.DefaultSettings(restaurantID)
	} else if err != nil {
		s.logger.Error("Get: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	if err := s.cache.Set(ctx, settings); err != nil {
		s.logger.Warn("Get: cache write failed for restaurant=%d: %v", restaurantID, err)
	}

	return settings, nil
}

// GetResponse то же, что Get, но в форме ответа API
func (s *Service) GetResponse(ctx context.Context, restaurantID int64) (*models.SettingsResponse, error) {
	settings, err := s.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	resp := models.FromDomainSettings(settings)
	return &resp, nil
}

// Save проверяет и сохраняет настройки вместе с изменениями слотов.
// Доступно только менеджерам ресторана.
// Всё пишется в одной сериализуемой транзакции; после успешной фиксации кэш сбрасывается.
func (s *Service) Save(ctx context.Context, req *models.SaveSettingsRequest) (*models.SaveSettingsResponse, error) {
	s.logger.Info("Save: saving settings for restaurant=%d by user=%d (%d slot edits)",
		req.RestaurantID, req.UserID, len(req.TimeSlots))

	if err := s.checkManager(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	var (
		saved  *domain.Settings
		result *BuildResult
	)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := s.slotRepo.ListByRestaurant(ctx, req.RestaurantID, nil)
		if err != nil {
			return fmt.Errorf("%w: Save - list slots: %v", ErrCollaboratorUnavailable, err)
		}

		result, err = ValidateAndBuild(
			req.RestaurantID,
			req.ReservationSettings,
			req.PaymentSettings,
			req.ManagerSettings,
			req.TimeSlots,
			existing,
		)
		if err != nil {
			return err
		}

		saved, err = s.settingsRepo.Upsert(ctx, result.Settings)
		if err != nil {
			return fmt.Errorf("%w: Save - upsert settings: %v", ErrCollaboratorUnavailable, err)
		}

		return s.applySlots(ctx, result)
	})
	if err != nil {
		if errors.Is(err, rules.ErrValidation) || errors.Is(err, rules.ErrDuplicateSlot) {
			s.logger.Warn("Save: rejected settings for restaurant=%d: %v", req.RestaurantID, err)
			return nil, err
		}
		s.logger.Error("Save: failed for restaurant=%d: %v", req.RestaurantID, err)
		if errors.Is(err, ErrCollaboratorUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Save - %v", ErrCollaboratorUnavailable, err)
	}

	if err := s.cache.Invalidate(ctx, req.RestaurantID); err != nil {
		s.logger.Warn("Save: cache invalidation failed for restaurant=%d: %v", req.RestaurantID, err)
	}

	s.logger.Info("Save: restaurant=%d saved, slots created=%d updated=%d deleted=%d",
		req.RestaurantID, len(result.SlotCreates), len(result.SlotUpdates), len(result.SlotDeletes))

	return &models.SaveSettingsResponse{
		Settings:     models.FromDomainSettings(saved),
		SlotsCreated: len(result.SlotCreates),
		SlotsUpdated: len(result.SlotUpdates),
		SlotsDeleted: len(result.SlotDeletes),
	}, nil
}

// applySlots удаления идут первыми, чтобы освободить уникальный индекс
func (s *Service) applySlots(ctx context.Context, result *BuildResult) error {
	restaurantID := result.Settings.RestaurantID

	for _, id := range result.SlotDeletes {
		if err := s.slotRepo.Delete(ctx, restaurantID, id); err != nil {
			return fmt.Errorf("%w: Save - delete slot id=%d: %v", ErrCollaboratorUnavailable, id, err)
		}
	}

	for i := range result.SlotUpdates {
		if _, err := s.slotRepo.Update(ctx, &result.SlotUpdates[i]); err != nil {
			return slotWriteError(&result.SlotUpdates[i], err)
		}
	}

	for i := range result.SlotCreates {
		if _, err := s.slotRepo.Create(ctx, &result.SlotCreates[i]); err != nil {
			return slotWriteError(&result.SlotCreates[i], err)
		}
	}

	return nil
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

// slotWriteError уникальный индекс мог сработать на слот, добавленный параллельно
func slotWriteError(slot *domain.TimeSlot, err error) error {
	if errors.Is(err, timeslotRepo.ErrDuplicateSlot) {
		return &rules.DuplicateSlotError{Weekday: slot.Weekday, StartTime: slot.StartTime, EndTime: slot.EndTime}
	}
	return fmt.Errorf("%w: Save - write slot: %v", ErrCollaboratorUnavailable, err)
}
