package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// TimeSlot represents a recurring weekly time slot offered for reservations
type TimeSlot struct {
	ID           int64
	RestaurantID int64
	Weekday      time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime    types.TimeString
	EndTime      types.TimeString
	MaxCovers    int
	IsDefault    bool
	SpecificDate *time.Time // Слот только на конкретную дату
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SameRange returns true if both slots have identical start and end times
func (s *TimeSlot) SameRange(other *TimeSlot) bool {
	return s.StartTime == other.StartTime && s.EndTime == other.EndTime
}

// DurationMinutes returns slot length in minutes
func (s *TimeSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// AppliesTo returns true if the slot is offered on the given date
func (s *TimeSlot) AppliesTo(date time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.SpecificDate != nil {
		y1, m1, d1 := s.SpecificDate.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return s.Weekday == date.Weekday()
}
