package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	cancelReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidRestaurantID  = "некорректный ID ресторана"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingUserID        = "не указан пользователь"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotCancel         = "бронирование не может быть отменено"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/restaurants/{restaurantId}/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		UserID:        userID,
		RestaurantID:  restaurantID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Reservation not found: reservation_id=%d",
				reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelReservation.ErrCannotCancel):
			h.logger.Warn("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Cannot cancel: reservation_id=%d",
				reservationID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelReservation.ErrCollaboratorUnavailable):
			h.logger.Error("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Store unavailable: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Failed to cancel: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /restaurants/{id}/reservations/{reservationId}/cancel - Reservation cancelled: reservation_id=%d, refund=%t",
		reservationID, result.RefundEligible)
	handlers.RespondJSON(w, http.StatusOK, result)
}
