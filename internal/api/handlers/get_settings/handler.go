package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings"
)

const msgInvalidRestaurantID = "некорректный ID ресторана"

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

// Handle GET /api/v1/restaurants/{restaurantId}/settings
// Публичный endpoint. Если ресторан ничего не сохранял, отдаются значения по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/settings - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	result, err := h.service.GetResponse(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, settings.ErrCollaboratorUnavailable) {
			h.logger.Error("GET /restaurants/{id}/settings - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}

		h.logger.Error("GET /restaurants/{id}/settings - Failed to get settings: restaurant_id=%d, error=%v",
			restaurantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /restaurants/{id}/settings - Settings retrieved: restaurant_id=%d, default=%t",
		restaurantID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
