package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrCannotCancel возвращается, когда бронирование уже не в pending/confirmed
	ErrCannotCancel = errors.New("reservation.repository: reservation cannot be cancelled")

	// ErrCannotSeat возвращается, когда бронирование уже посажено, отменено или завершено
	ErrCannotSeat = errors.New("reservation.repository: reservation cannot be seated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
