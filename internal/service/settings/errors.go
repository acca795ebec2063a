package settings

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("settings: access denied")

	// ErrCollaboratorUnavailable возвращается, когда хранилище не ответило;
	// действие можно повторить
	ErrCollaboratorUnavailable = errors.New("settings: store unavailable")
)
