package update_table_status

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
)

type TableService interface {
	UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.TableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
