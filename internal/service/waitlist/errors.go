package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist: entry not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("waitlist: access denied")

	// ErrCollaboratorUnavailable возвращается, когда хранилище не ответило
	ErrCollaboratorUnavailable = errors.New("waitlist: store unavailable")
)
