package rules

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ValidateTimeSlot проверяет, что кандидат не дублирует существующий активный слот
// в тот же день недели. excludeID - ID редактируемого слота (nil при создании).
//
// Проверяется только точное совпадение (startTime, endTime): пересекающиеся,
// но не идентичные интервалы допустимы.
// Например, 18:00-19:00 и 18:30-19:30 в один день - не конфликт.
func ValidateTimeSlot(candidate domain.TimeSlot, existing []domain.TimeSlot, excludeID *int64) error {
	for i := range existing {
		slot := &existing[i]

		if slot.Weekday != candidate.Weekday || !slot.IsActive {
			continue
		}
		if excludeID != nil && slot.ID == *excludeID {
			continue
		}

		if slot.SameRange(&candidate) {
			return &DuplicateSlotError{
				Weekday:   candidate.Weekday,
				StartTime: candidate.StartTime,
				EndTime:   candidate.EndTime,
			}
		}
	}

	return nil
}

// CheckTimeSlotShape проверяет сам слот: день недели, формат времени,
// начало раньше конца, вместимость
func CheckTimeSlotShape(slot domain.TimeSlot) error {
	if slot.Weekday < time.Sunday || slot.Weekday > time.Saturday {
		return NewValidationError("weekday", fmt.Sprintf("must be between 0 and 6, got %d", slot.Weekday))
	}

	if err := slot.StartTime.Validate(); err != nil {
		return NewValidationError("startTime", "expected HH:MM")
	}
	if err := slot.EndTime.Validate(); err != nil {
		return NewValidationError("endTime", "expected HH:MM")
	}

	if slot.DurationMinutes() <= 0 {
		return NewValidationError("endTime", "must be after startTime")
	}

	if slot.MaxCovers <= 0 || slot.MaxCovers > domain.MaxSlotCovers {
		return NewValidationError("maxCovers", fmt.Sprintf("must be between 1 and %d", domain.MaxSlotCovers))
	}

	return nil
}
