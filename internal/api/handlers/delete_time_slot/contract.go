package delete_time_slot

import "context"

type TimeSlotService interface {
	Delete(ctx context.Context, userID, restaurantID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
