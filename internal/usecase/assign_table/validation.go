package assign_table

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.EntryType != EntryWaitlist && req.EntryType != EntryReservation {
		return fmt.Errorf("%w: entryType must be %q or %q", ErrInvalidInput, EntryWaitlist, EntryReservation)
	}

	if req.EntryID <= 0 {
		return fmt.Errorf("%w: entryId must be positive", ErrInvalidInput)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableId must be positive", ErrInvalidInput)
	}

	return nil
}
