package timeslots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("timeslots: slot not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("timeslots: access denied")

	// ErrCollaboratorUnavailable возвращается, когда хранилище не ответило
	ErrCollaboratorUnavailable = errors.New("timeslots: store unavailable")
)
