package waitlist

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
	"status",
	"table_id",
	"notes",
	"created_at",
	"seated_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет гостя в лист ожидания
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("restaurant_id", "guest_name", "phone", "party_size", "status", "notes").
		Values(entry.RestaurantID, entry.GuestName, entry.Phone, entry.PartySize, entry.Status, entry.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// ListByRestaurant возвращает записи ресторана в порядке очереди.
// status == nil - все записи.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"restaurant_id": restaurantID})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRestaurant - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetByID получает запись листа ожидания.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, restaurantID, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id, "restaurant_id": restaurantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if txmanager.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetByID - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// MarkSeated сажает гостя за стол, только если он всё еще ждет
func (r *Repository) MarkSeated(ctx context.Context, restaurantID, id, tableID int64, seatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistSeated).
		Set("table_id", tableID).
		Set("seated_at", seatedAt).
		Where(squirrel.Eq{
			"id":            id,
			"restaurant_id": restaurantID,
			"status":        domain.WaitlistWaiting,
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
		return ErrEntryNotWaiting
	}

	return nil
}

// AverageWaitMinutes средняя длительность ожидания посаженных с момента since.
// Если посаженных нет, возвращает 0.
func (r *Repository) AverageWaitMinutes(ctx context.Context, restaurantID int64, since time.Time) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(AVG(EXTRACT(EPOCH FROM (seated_at - created_at)) / 60), 0)").
		From("waitlist_entries").
		Where(squirrel.Eq{"restaurant_id": restaurantID, "status": domain.WaitlistSeated}).
		Where(squirrel.GtOrEq{"created_at": since}).
		Where(squirrel.NotEq{"seated_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: AverageWaitMinutes - build select query: %v", ErrBuildQuery, err)
	}

	var avg float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("%w: AverageWaitMinutes - scan: %v", ErrScanRow, err)
	}

	return avg, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var (
		entry     domain.WaitlistEntry
		createdAt sql.NullTime
	)

	err := row.Scan(
		&entry.ID,
		&entry.RestaurantID,
		&entry.GuestName,
		&entry.Phone,
		&entry.PartySize,
		&entry.Status,
		&entry.TableID,
		&entry.Notes,
		&createdAt,
		&entry.SeatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
