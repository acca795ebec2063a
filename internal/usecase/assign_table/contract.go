package assign_table

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, restaurantID, id int64) (*domain.Table, error)
	Occupy(ctx context.Context, restaurantID, id int64, partySize int) error
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetByID(ctx context.Context, restaurantID, id int64) (*domain.WaitlistEntry, error)
	MarkSeated(ctx context.Context, restaurantID, id, tableID int64, seatedAt time.Time) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, restaurantID, id int64) (*domain.Reservation, error)
	MarkSeated(ctx context.Context, restaurantID, id, tableID int64) error
}

// ManagerRepository проверка прав менеджера
type ManagerRepository interface {
	IsManager(ctx context.Context, restaurantID, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов посадки
type Metrics interface {
	IncAssignment(outcome string)
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
