package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/restaurants/{restaurantId}/settings
// Тело: reservation_settings, payment_settings, manager_settings, time_slots.
// Числа и флаги принимаются и строками, пустые поля заменяются значениями по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("PUT /restaurants/{id}/settings - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /restaurants/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SaveSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /restaurants/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.RestaurantID = restaurantID

	result, err := h.service.Save(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /restaurants/{id}/settings - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("PUT /restaurants/{id}/settings - Invalid settings: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, rules.ErrDuplicateSlot):
			h.logger.Warn("PUT /restaurants/{id}/settings - Duplicate slot: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondDuplicateSlot(w, err)

		case errors.Is(err, settings.ErrCollaboratorUnavailable):
			h.logger.Error("PUT /restaurants/{id}/settings - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /restaurants/{id}/settings - Failed to save settings: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /restaurants/{id}/settings - Settings saved: restaurant_id=%d, user_id=%d",
		restaurantID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
