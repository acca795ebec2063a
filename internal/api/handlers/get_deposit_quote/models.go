package get_deposit_quote

import (
	"fmt"
	"strconv"
	"time"

	getDepositQuote "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_deposit_quote"
)

// ToUseCaseRequest собирает запрос из query параметров partySize и time (RFC3339)
func ToUseCaseRequest(restaurantID int64, partySizeStr, timeStr string) (*getDepositQuote.Request, error) {
	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil {
		return nil, fmt.Errorf("partySize: %w", err)
	}

	requestedTime, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	return &getDepositQuote.Request{
		RestaurantID:  restaurantID,
		PartySize:     partySize,
		RequestedTime: requestedTime,
	}, nil
}
