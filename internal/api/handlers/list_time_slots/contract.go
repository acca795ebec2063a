package list_time_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	List(ctx context.Context, restaurantID int64, weekday *time.Weekday) (*models.SlotListResponse, error)
	ListForDate(ctx context.Context, restaurantID int64, date time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
