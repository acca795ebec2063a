package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, restaurantID, id int64) (*domain.WaitlistEntry, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Table, error)
}

// ManagerRepository проверка прав менеджера
type ManagerRepository interface {
	IsManager(ctx context.Context, restaurantID, userID int64) (bool, error)
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
