package domain

import "time"

// WaitlistStatus represents the status of a walk-in waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "waiting"
	WaitlistSeated    WaitlistStatus = "seated"
	WaitlistCancelled WaitlistStatus = "cancelled"
	WaitlistNoShow    WaitlistStatus = "no_show"
)

// WaitlistEntry represents a walk-in party waiting for a table
type WaitlistEntry struct {
	ID           int64
	RestaurantID int64
	GuestName    string
	Phone        *string
	PartySize    int
	Status       WaitlistStatus
	TableID      *int64
	Notes        *string
	CreatedAt    time.Time
	SeatedAt     *time.Time
}

// IsWaiting returns true if the entry is still waiting for a table
func (e *WaitlistEntry) IsWaiting() bool {
	return e.Status == WaitlistWaiting
}

// WaitDuration returns how long the party waited (or has been waiting until now)
func (e *WaitlistEntry) WaitDuration(now time.Time) time.Duration {
	if e.SeatedAt != nil {
		return e.SeatedAt.Sub(e.CreatedAt)
	}
	return now.Sub(e.CreatedAt)
}

// Party returns the party of the entry; walk-ins are seated now
func (e *WaitlistEntry) Party(now time.Time) Party {
	return Party{PartySize: e.PartySize, RequestedTime: now}
}
