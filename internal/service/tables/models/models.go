package models

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// UpdateStatusRequest запрос на смену статуса стола
type UpdateStatusRequest struct {
	UserID       int64  `json:"-"`
	RestaurantID int64  `json:"-"`
	TableID      int64  `json:"-"`
	Status       string `json:"status"`
}

// TableResponse ответ с данными стола
type TableResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	Name         string    `json:"name"`
	Seats        int       `json:"seats"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableListResponse ответ со списком столов
type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
}

// FromDomainTable конвертирует domain модель в DTO
func FromDomainTable(t *domain.Table) TableResponse {
	return TableResponse{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		Name:         t.Name,
		Seats:        t.Seats,
		Status:       string(t.Status),
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromDomainTables конвертирует список столов
func FromDomainTables(tables []domain.Table) TableListResponse {
	resp := TableListResponse{Tables: make([]TableResponse, 0, len(tables))}
	for i := range tables {
		resp.Tables = append(resp.Tables, FromDomainTable(&tables[i]))
	}
	return resp
}
