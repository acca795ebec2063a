package domain

import "time"

// TableStatus represents the status of a dining table
type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableCleaning    TableStatus = "cleaning"
	TableMaintenance TableStatus = "maintenance"
)

// Table represents a dining table of a restaurant
type Table struct {
	ID           int64
	RestaurantID int64
	Name         string
	Seats        int
	Status       TableStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAvailable returns true if the table can accept a party right now
func (t *Table) IsAvailable() bool {
	return t.Status == TableAvailable
}

// Fits returns true if the table has enough seats for the party
func (t *Table) Fits(partySize int) bool {
	return t.Seats >= partySize
}

// IsValidTableStatus проверяет, что статус входит в допустимый набор
func IsValidTableStatus(s TableStatus) bool {
	switch s {
	case TableAvailable, TableOccupied, TableCleaning, TableMaintenance:
		return true
	}
	return false
}
