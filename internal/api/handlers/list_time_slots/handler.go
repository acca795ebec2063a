package list_time_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots"
	"github.com/m04kA/SMC-RestaurantService/internal/service/timeslots/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidWeekday      = "некорректный день недели, ожидается число от 0 до 6"
	msgInvalidDate         = "некорректная дата, ожидается YYYY-MM-DD"
	msgWeekdayWithDate     = "укажите либо weekday, либо date"
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

// Handle GET /api/v1/restaurants/{restaurantId}/time-slots
// Query params: weekday или date (опционально, взаимоисключающие)
// Публичный endpoint - только активные слоты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/time-slots - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	weekday, err := ParseWeekday(r.URL.Query().Get("weekday"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/time-slots - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	date, err := ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/time-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date != nil && weekday != nil {
		h.logger.Warn("GET /restaurants/{id}/time-slots - Both weekday and date given: restaurant_id=%d", restaurantID)
		handlers.RespondBadRequest(w, msgWeekdayWithDate)
		return
	}

	var result *models.SlotListResponse
	if date != nil {
		result, err = h.service.ListForDate(r.Context(), restaurantID, *date)
	} else {
		result, err = h.service.List(r.Context(), restaurantID, weekday)
	}
	if err != nil {
		if errors.Is(err, timeslots.ErrCollaboratorUnavailable) {
			h.logger.Error("GET /restaurants/{id}/time-slots - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}

		h.logger.Error("GET /restaurants/{id}/time-slots - Failed to list slots: restaurant_id=%d, error=%v",
			restaurantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /restaurants/{id}/time-slots - Slots retrieved: restaurant_id=%d, count=%d",
		restaurantID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
