package get_dashboard_insights

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/integrations/insights"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
)

// UseCase use case дашборда менеджера
type UseCase struct {
	reservationRepo ReservationRepository
	waitlistRepo    WaitlistRepository
	settings        SettingsProvider
	managerRepo     ManagerRepository
	generator       InsightGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	waitlistRepo WaitlistRepository,
	settings SettingsProvider,
	managerRepo ManagerRepository,
	generator InsightGenerator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		waitlistRepo:    waitlistRepo,
		settings:        settings,
		managerRepo:     managerRepo,
		generator:       generator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute собирает агрегаты и текстовую подсказку.
// Сбой генератора текста не ломает ответ: он сам подставляет запасную пару.
// Сбой хранилища - ErrCollaboratorUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ok, err := uc.managerRepo.IsManager(ctx, req.RestaurantID, req.UserID)
	if err != nil {
		uc.logger.Error("GetDashboardInsights: failed to check manager: %v", err)
		return nil, fmt.Errorf("%w: check manager: %v", ErrCollaboratorUnavailable, err)
	}
	if !ok {
		uc.logger.Warn("GetDashboardInsights: user=%d is not a manager of restaurant=%d", req.UserID, req.RestaurantID)
		return nil, ErrAccessDenied
	}

	settings, err := uc.settings.Get(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("GetDashboardInsights: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: get settings: %v", ErrCollaboratorUnavailable, err)
	}

	// Границы суток считаются по часам ресторана
	loc := settings.Manager.Location()
	now := uc.timeProvider.Now().In(loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := todayStart.AddDate(0, 0, 1)
	weekEnd := tomorrow.AddDate(0, 0, upcomingDays)

	today, err := uc.reservationRepo.CountActive(ctx, req.RestaurantID, todayStart, tomorrow)
	if err != nil {
		return nil, uc.storeError("count today", err)
	}

	upcoming, err := uc.reservationRepo.CountActive(ctx, req.RestaurantID, tomorrow, weekEnd)
	if err != nil {
		return nil, uc.storeError("count upcoming", err)
	}

	stats, err := uc.reservationRepo.Stats(ctx, req.RestaurantID, todayStart.AddDate(0, 0, -statsWindowDays), tomorrow)
	if err != nil {
		return nil, uc.storeError("stats", err)
	}

	avgWait, err := uc.waitlistRepo.AverageWaitMinutes(ctx, req.RestaurantID, todayStart.AddDate(0, 0, -waitWindowDays))
	if err != nil {
		return nil, uc.storeError("average wait", err)
	}

	avgParty := math.Round(stats.AvgPartySize*10) / 10
	cancellationRate := stats.CancellationRatePct()
	avgWait = math.Round(avgWait*10) / 10

	metrics := Metrics{
		TodayReservations: today,
		AvgWaitMinutes:    avgWait,
	}
	prefs := settings.Manager
	if prefs.ShowThisWeek {
		metrics.UpcomingWeekReservations = ptr.Ptr(upcoming)
	}
	if prefs.ShowAvgPartySize {
		metrics.AvgPartySize = ptr.Ptr(avgParty)
	}
	if prefs.ShowCancellationRate {
		metrics.CancellationRatePct = ptr.Ptr(cancellationRate)
	}
	if prefs.ShowPeakHour {
		peak, err := uc.peakHour(ctx, req.RestaurantID, tomorrow, weekEnd, loc)
		if err != nil {
			return nil, uc.storeError("peak hour", err)
		}
		metrics.PeakHour = peak
	}

	insight := uc.generator.Generate(ctx, insights.Request{
		TodayReservations:        today,
		UpcomingWeekReservations: upcoming,
		AvgPartySize:             avgParty,
		CancellationRatePct:      cancellationRate,
		AvgWaitTime:              avgWait,
	})

	uc.logger.Info("GetDashboardInsights: restaurant=%d today=%d upcoming=%d cancel=%.1f%%",
		req.RestaurantID, today, upcoming, cancellationRate)

	return &Response{
		RestaurantID: req.RestaurantID,
		Timezone:     loc.String(),
		GeneratedAt:  now,
		Metrics:      metrics,
		Insight:      insight.Insight,
		Suggestion:   insight.Suggestion,
	}, nil
}

// peakHour самый загруженный час по активным броням периода, nil если броней нет.
// При равенстве берется более ранний час.
func (uc *UseCase) peakHour(ctx context.Context, restaurantID int64, from, to time.Time, loc *time.Location) (*string, error) {
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationsFilter{
		RestaurantID: restaurantID,
		From:         &from,
		To:           &to,
	})
	if err != nil {
		return nil, err
	}

	var perHour [24]int
	for _, r := range reservations {
		if r.IsActive() {
			perHour[r.ReservationTime.In(loc).Hour()]++
		}
	}

	best := -1
	for h, n := range perHour {
		if n > 0 && (best < 0 || n > perHour[best]) {
			best = h
		}
	}
	if best < 0 {
		return nil, nil
	}

	return ptr.Ptr(fmt.Sprintf("%02d:00", best)), nil
}

func (uc *UseCase) storeError(op string, err error) error {
	uc.logger.Error("GetDashboardInsights: %s failed: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrCollaboratorUnavailable, op, err)
}
