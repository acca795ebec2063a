package assign_table

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_table: invalid input data")

	// ErrAccessDenied возвращается, когда пользователь не менеджер ресторана
	ErrAccessDenied = errors.New("assign_table: access denied")

	// ErrEntryNotFound возвращается, когда запись очереди или бронирование не найдены
	ErrEntryNotFound = errors.New("assign_table: entry not found")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("assign_table: table not found")

	// ErrTableTooSmall возвращается, когда за столом не хватает мест для компании
	ErrTableTooSmall = errors.New("assign_table: table is too small for the party")

	// ErrAssignmentConflict возвращается, когда стол или гостей уже посадили параллельно
	ErrAssignmentConflict = errors.New("assign_table: assignment conflict")

	// ErrCollaboratorUnavailable возвращается, когда хранилище не ответило
	ErrCollaboratorUnavailable = errors.New("assign_table: store unavailable")
)
