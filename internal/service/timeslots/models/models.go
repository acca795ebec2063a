package models

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// Request модели

// SlotRequest поля слота при создании и изменении
type SlotRequest struct {
	Weekday      int     `json:"weekday"` // 0 = воскресенье
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	MaxCovers    int     `json:"maxCovers"`
	IsDefault    bool    `json:"isDefault"`
	SpecificDate *string `json:"specificDate,omitempty"` // YYYY-MM-DD
	IsActive     *bool   `json:"isActive,omitempty"`     // по умолчанию true
}

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	UserID       int64
	RestaurantID int64
	SlotRequest
}

// UpdateSlotRequest запрос на изменение слота
type UpdateSlotRequest struct {
	UserID       int64
	RestaurantID int64
	SlotID       int64
	SlotRequest
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	Weekday      int       `json:"weekday"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	MaxCovers    int       `json:"maxCovers"`
	IsDefault    bool      `json:"isDefault"`
	SpecificDate *string   `json:"specificDate,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) SlotResponse {
	resp := SlotResponse{
		ID:           s.ID,
		RestaurantID: s.RestaurantID,
		Weekday:      int(s.Weekday),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		MaxCovers:    s.MaxCovers,
		IsDefault:    s.IsDefault,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.SpecificDate != nil {
		date := s.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &date
	}
	return resp
}
