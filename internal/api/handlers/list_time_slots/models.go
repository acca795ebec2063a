package list_time_slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ParseWeekday разбирает query параметр weekday (0 = воскресенье). Пустая строка - все дни.
func ParseWeekday(raw string) (*time.Weekday, error) {
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	if n < int(time.Sunday) || n > int(time.Saturday) {
		return nil, fmt.Errorf("weekday out of range: %d", n)
	}

	weekday := time.Weekday(n)
	return &weekday, nil
}

// ParseDate разбирает query параметр date (YYYY-MM-DD). Пустая строка - без фильтра по дате.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
