package delete_time_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidSlotID       = "некорректный ID слота"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
	msgNotFound            = "временной слот не найден"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/restaurants/{restaurantId}/time-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("DELETE /restaurants/{id}/time-slots/{slotId} - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /restaurants/{id}/time-slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /restaurants/{id}/time-slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), userID, restaurantID, slotID)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrSlotNotFound):
			h.logger.Warn("DELETE /restaurants/{id}/time-slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("DELETE /restaurants/{id}/time-slots/{slotId} - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeslots.ErrCollaboratorUnavailable):
			h.logger.Error("DELETE /restaurants/{id}/time-slots/{slotId} - Store unavailable: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /restaurants/{id}/time-slots/{slotId} - Failed to delete slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /restaurants/{id}/time-slots/{slotId} - Slot deleted: restaurant_id=%d, slot_id=%d",
		restaurantID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
