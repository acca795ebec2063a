package add_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist"
	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/restaurants/{restaurantId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("POST /restaurants/{id}/waitlist - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /restaurants/{id}/waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restaurants/{id}/waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.RestaurantID = restaurantID

	result, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("POST /restaurants/{id}/waitlist - Invalid entry: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("POST /restaurants/{id}/waitlist - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrCollaboratorUnavailable):
			h.logger.Error("POST /restaurants/{id}/waitlist - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /restaurants/{id}/waitlist - Failed to add entry: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /restaurants/{id}/waitlist - Entry added: restaurant_id=%d, entry_id=%d, party=%d",
		restaurantID, result.ID, result.PartySize)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
