package create_time_slot

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
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
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

// Handle POST /api/v1/restaurants/{restaurantId}/time-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("POST /restaurants/{id}/time-slots - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /restaurants/{id}/time-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body models.SlotRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /restaurants/{id}/time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateSlotRequest{
		UserID:       userID,
		RestaurantID: restaurantID,
		SlotRequest:  body,
	})
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("POST /restaurants/{id}/time-slots - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("POST /restaurants/{id}/time-slots - Invalid slot: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, rules.ErrDuplicateSlot):
			h.logger.Warn("POST /restaurants/{id}/time-slots - Duplicate slot: %v", err)
			handlers.RespondDuplicateSlot(w, err)

		case errors.Is(err, timeslots.ErrCollaboratorUnavailable):
			h.logger.Error("POST /restaurants/{id}/time-slots - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /restaurants/{id}/time-slots - Failed to create slot: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /restaurants/{id}/time-slots - Slot created: restaurant_id=%d, slot_id=%d",
		restaurantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
