package get_eligible_tables

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist/models"
)

type WaitlistService interface {
	EligibleTables(ctx context.Context, userID, restaurantID, entryID int64) (*models.EligibleTablesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
