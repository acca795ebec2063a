package create_time_slot

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots/models"
)

type TimeSlotService interface {
	Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
