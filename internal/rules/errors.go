package rules

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

var (
	// ErrDuplicateSlot возвращается, когда на тот же день недели уже есть активный слот
	// с идентичными временем начала и окончания
	ErrDuplicateSlot = errors.New("rules: duplicate time slot")

	// ErrValidation возвращается, когда данные некорректны и не могут быть исправлены значениями по умолчанию
	ErrValidation = errors.New("rules: validation failed")
)

// DuplicateSlotError детали конфликта слотов
type DuplicateSlotError struct {
	Weekday   time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

func (e *DuplicateSlotError) Error() string {
	return fmt.Sprintf("%v: %s %s-%s", ErrDuplicateSlot, e.Weekday, e.StartTime, e.EndTime)
}

func (e *DuplicateSlotError) Is(target error) bool {
	return target == ErrDuplicateSlot
}

// ValidationError ошибка валидации конкретного поля
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError создает ошибку валидации поля
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
