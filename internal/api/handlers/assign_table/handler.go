package assign_table

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	assignTable "github.com/m04kA/SMC-RestaurantService/internal/usecase/assign_table"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные посадки"
	msgMissingUserID       = "не указан пользователь"
	msgForbidden           = "доступ запрещен"
	msgEntryNotFound       = "запись очереди или бронирование не найдены"
	msgTableNotFound       = "стол не найден"
	msgTableTooSmall       = "за столом недостаточно мест для компании"
	msgConflict            = "стол уже занят или гости уже посажены"
)

type Handler struct {
	useCase AssignTableUseCase
	logger  Logger
}

func NewHandler(useCase AssignTableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/restaurants/{restaurantId}/assignments
// Сажает гостей из очереди или по брони за стол. При гонке выигрывает один запрос,
// остальные получают 409.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("POST /restaurants/{id}/assignments - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /restaurants/{id}/assignments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AssignTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restaurants/{id}/assignments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, restaurantID))
	if err != nil {
		switch {
		case errors.Is(err, assignTable.ErrInvalidInput):
			h.logger.Warn("POST /restaurants/{id}/assignments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, assignTable.ErrAccessDenied):
			h.logger.Warn("POST /restaurants/{id}/assignments - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assignTable.ErrEntryNotFound):
			h.logger.Warn("POST /restaurants/{id}/assignments - Entry not found: %s %d", req.EntryType, req.EntryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, assignTable.ErrTableNotFound):
			h.logger.Warn("POST /restaurants/{id}/assignments - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, assignTable.ErrTableTooSmall):
			h.logger.Warn("POST /restaurants/{id}/assignments - Table too small: table_id=%d", req.TableID)
			handlers.RespondBadRequest(w, msgTableTooSmall)

		case errors.Is(err, assignTable.ErrAssignmentConflict):
			h.logger.Warn("POST /restaurants/{id}/assignments - Conflict: table_id=%d, %s %d",
				req.TableID, req.EntryType, req.EntryID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, assignTable.ErrCollaboratorUnavailable):
			h.logger.Error("POST /restaurants/{id}/assignments - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /restaurants/{id}/assignments - Failed to assign table: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /restaurants/{id}/assignments - Seated: %s %d at table %d",
		result.EntryType, result.EntryID, result.TableID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
