package get_dashboard_insights

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/integrations/insights"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Stats(ctx context.Context, restaurantID int64, from, to time.Time) (*domain.ReservationStats, error)
	CountActive(ctx context.Context, restaurantID int64, from, to time.Time) (int, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	AverageWaitMinutes(ctx context.Context, restaurantID int64, since time.Time) (float64, error)
}

// SettingsProvider источник настроек ресторана
type SettingsProvider interface {
	Get(ctx context.Context, restaurantID int64) (*domain.Settings, error)
}

// ManagerRepository проверка прав менеджера
type ManagerRepository interface {
	IsManager(ctx context.Context, restaurantID, userID int64) (bool, error)
}

// InsightGenerator внешний генератор текста, всегда возвращает заполненную пару
type InsightGenerator interface {
	Generate(ctx context.Context, req insights.Request) insights.Insight
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
