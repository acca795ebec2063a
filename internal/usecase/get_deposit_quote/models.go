package get_deposit_quote

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/rules"
)

// Request модель запроса расчета депозита
type Request struct {
	RestaurantID  int64     // ID ресторана
	PartySize     int       // Размер компании
	RequestedTime time.Time // Время визита, любой часовой пояс
}

// Response модель ответа с расчетом депозита
type Response struct {
	RestaurantID      int64                   `json:"restaurantId"`
	PartySize         int                     `json:"partySize"`
	LocalTime         string                  `json:"localTime"` // время визита в часовом поясе ресторана
	Required          bool                    `json:"required"`
	Amount            float64                 `json:"amount"`
	Breakdown         *rules.DepositBreakdown `json:"breakdown,omitempty"`
	RefundPolicy      string                  `json:"refundPolicy"`
	RefundHoursBefore int                     `json:"refundHoursBefore,omitempty"`
}
