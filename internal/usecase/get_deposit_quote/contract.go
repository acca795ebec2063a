package get_deposit_quote

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// SettingsProvider источник настроек ресторана (сервис настроек с кэшем)
type SettingsProvider interface {
	Get(ctx context.Context, restaurantID int64) (*domain.Settings, error)
}

// Metrics счетчик выданных расчетов
type Metrics interface {
	IncDepositQuote(required bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
