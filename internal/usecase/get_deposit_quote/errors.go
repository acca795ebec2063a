package get_deposit_quote

import "errors"

var (
	// ErrCollaboratorUnavailable возвращается, когда настройки не удалось получить
	ErrCollaboratorUnavailable = errors.New("get_deposit_quote: settings unavailable")
)
