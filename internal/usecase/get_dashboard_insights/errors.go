package get_dashboard_insights

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("get_dashboard_insights: access denied")

	// ErrCollaboratorUnavailable возвращается, когда агрегаты не удалось посчитать
	ErrCollaboratorUnavailable = errors.New("get_dashboard_insights: store unavailable")
)
