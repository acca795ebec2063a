package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrCannotCancel возвращается, когда бронирование уже посажено, завершено или отменено
	ErrCannotCancel = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("cancel_reservation: access denied")

	// ErrCollaboratorUnavailable возвращается, когда хранилище не ответило
	ErrCollaboratorUnavailable = errors.New("cancel_reservation: store unavailable")
)
