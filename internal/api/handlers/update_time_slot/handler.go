package update_time_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots"
	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidSlotID       = "некорректный ID слота"
	msgInvalidRequestBody  = "некорректное тело запроса"
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

// Handle PUT /api/v1/restaurants/{restaurantId}/time-slots/{slotId}
// Тело заменяет слот целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body models.SlotRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateSlotRequest{
		UserID:       userID,
		RestaurantID: restaurantID,
		SlotID:       slotID,
		SlotRequest:  body,
	})
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrSlotNotFound):
			h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Invalid slot: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, rules.ErrDuplicateSlot):
			h.logger.Warn("PUT /restaurants/{id}/time-slots/{slotId} - Duplicate slot: %v", err)
			handlers.RespondDuplicateSlot(w, err)

		case errors.Is(err, timeslots.ErrCollaboratorUnavailable):
			h.logger.Error("PUT /restaurants/{id}/time-slots/{slotId} - Store unavailable: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /restaurants/{id}/time-slots/{slotId} - Failed to update slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /restaurants/{id}/time-slots/{slotId} - Slot updated: restaurant_id=%d, slot_id=%d",
		restaurantID, slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
