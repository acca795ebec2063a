package get_deposit_quote

import (
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return rules.NewValidationError("partySize",
			fmt.Sprintf("must be between %d and %d", domain.MinPartySize, domain.MaxPartySize))
	}

	if req.RequestedTime.IsZero() {
		return rules.NewValidationError("time", "is required")
	}

	return nil
}
