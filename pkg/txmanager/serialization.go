package txmanager

import (
	"errors"

	"github.com/lib/pq"
)

// ErrSerialization возвращается, когда Postgres отклонил сериализуемую транзакцию
// из-за параллельного изменения тех же строк. Повтор операции имеет смысл.
var ErrSerialization = errors.New("txmanager: serialization failure")

const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// IsSerializationFailure проверяет код ошибки Postgres
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
}
