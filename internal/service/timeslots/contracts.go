package timeslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID int64, weekday *time.Weekday) ([]domain.TimeSlot, error)
	GetByID(ctx context.Context, restaurantID, id int64) (*domain.TimeSlot, error)
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Update(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Delete(ctx context.Context, restaurantID, id int64) error
}

// ManagerRepository проверка прав менеджера
type ManagerRepository interface {
	IsManager(ctx context.Context, restaurantID, userID int64) (bool, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
