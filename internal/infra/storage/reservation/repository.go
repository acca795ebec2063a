package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

var columns = []string{
	"id",
	"restaurant_id",
	"guest_name",
	"phone",
	"party_size",
	"reservation_time",
	"status",
	"table_id",
	"special_occasion",
	"notes",
	"deposit_amount",
	"deposit_paid",
	"refund_eligible",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований.
// Сами бронирования создает гостевая витрина, здесь только чтение и переходы статусов.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование ресторана.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, restaurantID, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"id": id, "restaurant_id": restaurantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if txmanager.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetByID - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// List получает бронирования ресторана с фильтрацией.
//
// Примеры:
//
//  1. Все активные на сегодня:
//     filter := domain.ReservationsFilter{RestaurantID: 1, From: &dayStart, To: &dayEnd}
//
//  2. Только отмененные:
//     status := domain.ReservationCancelled
//     filter := domain.ReservationsFilter{RestaurantID: 1, Status: &status}
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"restaurant_id": filter.RestaurantID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"reservation_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveReservationStatuses)})
	}

	query, args, err := selectBuilder.OrderBy("reservation_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Cancel отменяет бронирование и фиксирует право на возврат депозита.
// Отменить можно только pending/confirmed, иначе ErrCannotCancel.
func (r *Repository) Cancel(ctx context.Context, restaurantID, id int64, refundEligible bool, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationCancelled).
		Set("refund_eligible", refundEligible).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":            id,
			"restaurant_id": restaurantID,
			"status":        statusStrings(domain.SeatableReservationStatuses),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// MarkSeated сажает гостей бронирования за стол, только если бронь еще pending/confirmed
func (r *Repository) MarkSeated(ctx context.Context, restaurantID, id, tableID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationSeated).
		Set("table_id", tableID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":            id,
			"restaurant_id": restaurantID,
			"status":        statusStrings(domain.SeatableReservationStatuses),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkSeated - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: MarkSeated - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return fmt.Errorf("%w: MarkSeated - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSeated - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotSeat
	}

	return nil
}

// Stats считает агрегаты за [from, to): все брони, отмененные и средний размер компании
func (r *Repository) Stats(ctx context.Context, restaurantID int64, from, to time.Time) (*domain.ReservationStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COALESCE(AVG(party_size), 0)",
	).
		From("reservations").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.GtOrEq{"reservation_time": from}).
		Where(squirrel.Lt{"reservation_time": to}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.ReservationStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.Cancelled, &stats.AvgPartySize)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// CountActive считает брони за [from, to) без отмененных и неявок
func (r *Repository) CountActive(ctx context.Context, restaurantID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.GtOrEq{"reservation_time": from}).
		Where(squirrel.Lt{"reservation_time": to}).
		Where(squirrel.NotEq{"status": statusStrings(domain.InactiveReservationStatuses)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation          domain.Reservation
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.RestaurantID,
		&reservation.GuestName,
		&reservation.Phone,
		&reservation.PartySize,
		&reservation.ReservationTime,
		&reservation.Status,
		&reservation.TableID,
		&reservation.SpecialOccasion,
		&reservation.Notes,
		&reservation.DepositAmount,
		&reservation.DepositPaid,
		&reservation.RefundEligible,
		&reservation.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

// statusStrings приводит статусы к []string для IN / NOT IN
func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
