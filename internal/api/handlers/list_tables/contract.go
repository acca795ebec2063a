package list_tables

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
)

type TableService interface {
	List(ctx context.Context, userID, restaurantID int64) (*models.TableListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
