package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	tableModels "github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist/models"
)

// Service сервис листа ожидания гостей без брони
type Service struct {
	waitlistRepo WaitlistRepository
	tableRepo    TableRepository
	managerRepo  ManagerRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	tableRepo TableRepository,
	managerRepo ManagerRepository,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		tableRepo:    tableRepo,
		managerRepo:  managerRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Add ставит компанию в очередь
func (s *Service) Add(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Add: restaurant=%d party=%d by user=%d", req.RestaurantID, req.PartySize, req.UserID)

	if err := validateAddRequest(req); err != nil {
		s.logger.Warn("Add: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkManager(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	entry, err := s.waitlistRepo.Create(ctx, &domain.WaitlistEntry{
		RestaurantID: req.RestaurantID,
		GuestName:    strings.TrimSpace(req.GuestName),
		Phone:        req.Phone,
		PartySize:    req.PartySize,
		Status:       domain.WaitlistWaiting,
		Notes:        req.Notes,
	})
	if err != nil {
		s.logger.Error("Add: repository error: %v", err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	s.logger.Info("Add: created entry id=%d", entry.ID)
	resp := models.FromDomainEntry(entry, s.timeProvider.Now())
	return &resp, nil
}

// List возвращает очередь ресторана. status == nil - все записи.
func (s *Service) List(ctx context.Context, userID, restaurantID int64, status *string) (*models.EntryListResponse, error) {
	var filter *domain.WaitlistStatus
	if status != nil && *status != "" {
		st := domain.WaitlistStatus(*status)
		if !isValidStatus(st) {
			return nil, rules.NewValidationError("status", fmt.Sprintf("unknown waitlist status %q", *status))
		}
		filter = &st
	}

	if err := s.checkManager(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	entries, err := s.waitlistRepo.ListByRestaurant(ctx, restaurantID, filter)
	if err != nil {
		s.logger.Error("List: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrCollaboratorUnavailable, err)
	}

	now := s.timeProvider.Now()
	resp := &models.EntryListResponse{Entries: make([]models.EntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, models.FromDomainEntry(e, now))
	}

	return resp, nil
}

// EligibleTables подбирает свободные столы, на которых поместится компания из очереди.
// Для уже посаженных или ушедших гостей список пустой.
func (s *Service) EligibleTables(ctx context.Context, userID, restaurantID, entryID int64) (*models.EligibleTablesResponse, error) {
	if err := s.checkManager(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	entry, err := s.waitlistRepo.GetByID(ctx, restaurantID, entryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("EligibleTables: entry id=%d not found", entryID)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("EligibleTables: failed to get entry: %v", err)
		return nil, fmt.Errorf("%w: EligibleTables - get entry: %v", ErrCollaboratorUnavailable, err)
	}

	resp := &models.EligibleTablesResponse{
		EntryID:   entry.ID,
		PartySize: entry.PartySize,
		Tables:    []tableModels.TableResponse{},
	}
	if !entry.IsWaiting() {
		return resp, nil
	}

	tables, err := s.tableRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("EligibleTables: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: EligibleTables - list tables: %v", ErrCollaboratorUnavailable, err)
	}

	eligible := rules.EligibleTables(tables, entry.Party(s.timeProvider.Now()))
	resp.Tables = tableModels.FromDomainTables(eligible).Tables

	return resp, nil
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

func validateAddRequest(req *models.AddEntryRequest) error {
	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return rules.NewValidationError("guestName", "is required")
	}
	if utf8.RuneCountInString(name) > domain.MaxGuestNameLength {
		return rules.NewValidationError("guestName", fmt.Sprintf("must be at most %d characters", domain.MaxGuestNameLength))
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return rules.NewValidationError("partySize",
			fmt.Sprintf("must be between %d and %d", domain.MinPartySize, domain.MaxPartySize))
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return rules.NewValidationError("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	return nil
}

func isValidStatus(s domain.WaitlistStatus) bool {
	switch s {
	case domain.WaitlistWaiting, domain.WaitlistSeated, domain.WaitlistCancelled, domain.WaitlistNoShow:
		return true
	}
	return false
}
