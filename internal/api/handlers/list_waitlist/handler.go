package list_waitlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
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

// Handle GET /api/v1/restaurants/{restaurantId}/waitlist
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/waitlist - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /restaurants/{id}/waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.List(r.Context(), userID, restaurantID, status)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("GET /restaurants/{id}/waitlist - Invalid status filter: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("GET /restaurants/{id}/waitlist - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrCollaboratorUnavailable):
			h.logger.Error("GET /restaurants/{id}/waitlist - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /restaurants/{id}/waitlist - Failed to list entries: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/waitlist - Entries retrieved: restaurant_id=%d, count=%d",
		restaurantID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
