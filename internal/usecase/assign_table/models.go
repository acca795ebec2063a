package assign_table

import "time"

// EntryType кого сажают: гостей из очереди или по брони
type EntryType string

const (
	EntryWaitlist    EntryType = "waitlist"
	EntryReservation EntryType = "reservation"
)

// Исходы посадки для метрик
const (
	outcomeSeated   = "seated"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Request модель запроса на посадку
type Request struct {
	UserID       int64     // ID менеджера
	RestaurantID int64     // ID ресторана
	EntryType    EntryType // waitlist или reservation
	EntryID      int64     // ID записи очереди или бронирования
	TableID      int64     // ID стола
}

// Response модель ответа с результатом посадки
type Response struct {
	EntryType EntryType `json:"entryType"`
	EntryID   int64     `json:"entryId"`
	TableID   int64     `json:"tableId"`
	TableName string    `json:"tableName"`
	PartySize int       `json:"partySize"`
	SeatedAt  time.Time `json:"seatedAt"`
}
