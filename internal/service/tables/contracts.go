package tables

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Table, error)
	UpdateStatus(ctx context.Context, restaurantID, id int64, status domain.TableStatus) (*domain.Table, error)
}

// ManagerRepository проверка прав менеджера
type ManagerRepository interface {
	IsManager(ctx context.Context, restaurantID, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
