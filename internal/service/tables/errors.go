package tables

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("tables: table not found")

	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("tables: access denied")

	// ErrCollaboratorUnavailable возвращается, когда хранилище не ответило
	ErrCollaboratorUnavailable = errors.New("tables: store unavailable")
)
