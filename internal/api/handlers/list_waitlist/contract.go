package list_waitlist

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist/models"
)

type WaitlistService interface {
	List(ctx context.Context, userID, restaurantID int64, status *string) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
