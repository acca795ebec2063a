package settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, restaurantID int64) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID int64, weekday *time.Weekday) ([]domain.TimeSlot, error)
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Update(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Delete(ctx context.Context, restaurantID, id int64) error
}

// ManagerRepository проверка прав менеджера
type ManagerRepository interface {
	IsManager(ctx context.Context, restaurantID, userID int64) (bool, error)
}

// SettingsCache кэш настроек
type SettingsCache interface {
	Get(ctx context.Context, restaurantID int64) (*domain.Settings, error)
	Set(ctx context.Context, settings *domain.Settings) error
	Invalidate(ctx context.Context, restaurantID int64) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учет обращений к кэшу
type Metrics interface {
	IncSettingsCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
