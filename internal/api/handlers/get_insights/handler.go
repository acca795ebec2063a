package get_insights

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	getDashboardInsights "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_dashboard_insights"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	useCase GetDashboardInsightsUseCase
	logger  Logger
}

func NewHandler(useCase GetDashboardInsightsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/insights
// Сбой генератора текста не влияет на статус: в ответе будет запасная подсказка.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/insights - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /restaurants/{id}/insights - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDashboardInsights.Request{
		UserID:       userID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDashboardInsights.ErrAccessDenied):
			h.logger.Warn("GET /restaurants/{id}/insights - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getDashboardInsights.ErrCollaboratorUnavailable):
			h.logger.Error("GET /restaurants/{id}/insights - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /restaurants/{id}/insights - Failed to build insights: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/insights - Insights built: restaurant_id=%d", restaurantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
