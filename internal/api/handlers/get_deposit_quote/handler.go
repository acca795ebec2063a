package get_deposit_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	getDepositQuote "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_deposit_quote"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidParams       = "некорректные параметры: ожидаются partySize и time в формате RFC3339"
)

type Handler struct {
	useCase GetDepositQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetDepositQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/deposit-quote
// Query params: partySize, time (RFC3339)
// Публичный endpoint - гость видит депозит до бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := handlers.PathInt64(r, "restaurantId")
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/deposit-quote - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(restaurantID, query.Get("partySize"), query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/deposit-quote - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrValidation):
			h.logger.Warn("GET /restaurants/{id}/deposit-quote - Invalid request: %v", err)
			handlers.RespondValidationError(w, err)

		case errors.Is(err, getDepositQuote.ErrCollaboratorUnavailable):
			h.logger.Error("GET /restaurants/{id}/deposit-quote - Store unavailable: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /restaurants/{id}/deposit-quote - Failed to quote: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/deposit-quote - Quote computed: restaurant_id=%d, party=%d, amount=%.2f",
		restaurantID, result.PartySize, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
