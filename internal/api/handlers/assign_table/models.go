package assign_table

import (
	assignTable "github.com/m04kA/SMC-RestaurantService/internal/usecase/assign_table"
)

// AssignTableRequest HTTP request model
type AssignTableRequest struct {
	EntryType string `json:"entryType"` // waitlist или reservation
	EntryID   int64  `json:"entryId"`
	TableID   int64  `json:"tableId"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *AssignTableRequest) ToUseCaseRequest(userID, restaurantID int64) *assignTable.Request {
	return &assignTable.Request{
		UserID:       userID,
		RestaurantID: restaurantID,
		EntryType:    assignTable.EntryType(r.EntryType),
		EntryID:      r.EntryID,
		TableID:      r.TableID,
	}
}
