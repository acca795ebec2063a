package update_table_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/tables"
	"github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidTableID      = "некорректный ID стола"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
	msgNotFound            = "стол не найден"
)

type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/restaurants/{restaurantId}/tables/{tableId}/status
// Тело: {"status": "available" | "occupied" | "cleaning" | "maintenance"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	tableID, err := handlers.PathInt64(r, "tableId")
	if err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.RestaurantID = restaurantID
	req.TableID = tableID

	result, err := h.service.UpdateStatus(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Invalid status: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tables.ErrAccessDenied):
			h.logger.Warn("PATCH /restaurants/{id}/tables/{tableId}/status - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, tables.ErrCollaboratorUnavailable):
			h.logger.Error("PATCH /restaurants/{id}/tables/{tableId}/status - Store unavailable: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /restaurants/{id}/tables/{tableId}/status - Failed to update: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /restaurants/{id}/tables/{tableId}/status - Status updated: table_id=%d, status=%s",
		tableID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
