package get_eligible_tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidEntryID      = "некорректный ID записи"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
	msgNotFound            = "запись листа ожидания не найдена"
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

// Handle GET /api/v1/restaurants/{restaurantId}/waitlist/{entryId}/eligible-tables
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	entryID, err := handlers.PathInt64(r, "entryId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.EligibleTables(r.Context(), userID, restaurantID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrCollaboratorUnavailable):
			h.logger.Error("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Store unavailable: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Failed: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/waitlist/{entryId}/eligible-tables - Found %d tables: entry_id=%d",
		len(result.Tables), entryID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
