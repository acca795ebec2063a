package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
)

// Service сервис столов зала
type Service struct {
	tableRepo   TableRepository
	managerRepo ManagerRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, managerRepo ManagerRepository, logger Logger) *Service {
	return &Service{
		tableRepo:   tableRepo,
		managerRepo: managerRepo,
		logger:      logger,
	}
}

// List возвращает столы ресторана. Доступно только менеджерам.
func (s *Service) List(ctx context.Context, userID, restaurantID int64) (*models.TableListResponse, error) {
	if err := s.checkManager(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	tables, err := s.tableRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("List: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	resp := models.FromDomainTables(tables)
	return &resp, nil
}

// UpdateStatus меняет статус стола (например, occupied -> cleaning -> available).
// Посадка гостей идет через assign_table, здесь проверки вместимости нет.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.TableResponse, error) {
	s.logger.Info("UpdateStatus: table id=%d of restaurant=%d -> %s by user=%d",
		req.TableID, req.RestaurantID, req.Status, req.UserID)

	status := domain.TableStatus(req.Status)
	if !domain.IsValidTableStatus(status) {
		s.logger.Warn("UpdateStatus: invalid status %q", req.Status)
		return nil, rules.NewValidationError("status", fmt.Sprintf("unknown table status %q", req.Status))
	}

	if err := s.checkManager(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	table, err := s.tableRepo.UpdateStatus(ctx, req.RestaurantID, req.TableID, status)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("UpdateStatus: table id=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		s.logger.Error("UpdateStatus: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	resp := models.FromDomainTable(table)
	return &resp, nil
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
