package table

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

var columns = []string{
	"id",
	"restaurant_id",
	"name",
	"seats",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий столов ресторана
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByRestaurant возвращает столы ресторана в порядке рассадки зала (по id)
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("restaurant_tables").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		var (
			t                    domain.Table
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Seats, &t.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByRestaurant - scan row: %v", ErrScanRow, err)
		}
		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRestaurant - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// GetByID получает стол ресторана.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца посадки.
func (r *Repository) GetByID(ctx context.Context, restaurantID, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("restaurant_tables").
		Where(squirrel.Eq{"id": id, "restaurant_id": restaurantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		t                    domain.Table
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Seats, &t.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if txmanager.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: GetByID - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan table: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// Occupy переводит стол в occupied, только если он всё еще свободен и вмещает компанию.
// Если условие не выполнено (другой менеджер успел раньше), возвращает ErrTableNotAvailable.
func (r *Repository) Occupy(ctx context.Context, restaurantID, id int64, partySize int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("restaurant_tables").
		Set("status", domain.TableOccupied).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":            id,
			"restaurant_id": restaurantID,
			"status":        domain.TableAvailable,
		}).
		Where(squirrel.GtOrEq{"seats": partySize}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Occupy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: Occupy - %v", txmanager.ErrSerialization, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Occupy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Occupy - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTableNotAvailable
	}

	return nil
}

// UpdateStatus меняет статус стола без условий (уборка, ремонт, освобождение)
func (r *Repository) UpdateStatus(ctx context.Context, restaurantID, id int64, status domain.TableStatus) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("restaurant_tables").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "restaurant_id": restaurantID}).
		Suffix("RETURNING id, restaurant_id, name, seats, status, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var (
		t                    domain.Table
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Seats, &t.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
