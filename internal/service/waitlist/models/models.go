package models

import (
	"math"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	tableModels "github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
)

// AddEntryRequest запрос на добавление гостя в лист ожидания
type AddEntryRequest struct {
	UserID       int64   `json:"-"`
	RestaurantID int64   `json:"-"`
	GuestName    string  `json:"guestName"`
	Phone        *string `json:"phone,omitempty"`
	PartySize    int     `json:"partySize"`
	Notes        *string `json:"notes,omitempty"`
}

// EntryResponse ответ с записью листа ожидания
type EntryResponse struct {
	ID          int64      `json:"id"`
	GuestName   string     `json:"guestName"`
	Phone       *string    `json:"phone,omitempty"`
	PartySize   int        `json:"partySize"`
	Status      string     `json:"status"`
	TableID     *int64     `json:"tableId,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	WaitMinutes int        `json:"waitMinutes"`
	CreatedAt   time.Time  `json:"createdAt"`
	SeatedAt    *time.Time `json:"seatedAt,omitempty"`
}

// EntryListResponse ответ со списком записей
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// EligibleTablesResponse подходящие столы для записи
type EligibleTablesResponse struct {
	EntryID   int64                       `json:"entryId"`
	PartySize int                         `json:"partySize"`
	Tables    []tableModels.TableResponse `json:"tables"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry, now time.Time) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		GuestName:   e.GuestName,
		Phone:       e.Phone,
		PartySize:   e.PartySize,
		Status:      string(e.Status),
		TableID:     e.TableID,
		Notes:       e.Notes,
		WaitMinutes: int(math.Floor(e.WaitDuration(now).Minutes())),
		CreatedAt:   e.CreatedAt,
		SeatedAt:    e.SeatedAt,
	}
}
