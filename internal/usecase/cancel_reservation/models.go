package cancel_reservation

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	UserID        int64 // ID менеджера
	RestaurantID  int64 // ID ресторана
	ReservationID int64 // ID бронирования
}

// Response модель ответа с результатом отмены
type Response struct {
	ReservationID  int64     `json:"reservationId"`
	Status         string    `json:"status"`
	DepositAmount  float64   `json:"depositAmount"`
	DepositPaid    bool      `json:"depositPaid"`
	RefundEligible bool      `json:"refundEligible"`
	RefundAmount   float64   `json:"refundAmount"`
	CancelledAt    time.Time `json:"cancelledAt"`
}
