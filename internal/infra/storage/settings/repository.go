package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

// Repository репозиторий настроек ресторана.
// Настройки хранятся двумя JSONB-колонками, по одной на каждую группу.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки ресторана.
// Если ресторан еще ничего не сохранял, возвращает ErrSettingsNotFound.
func (r *Repository) Get(ctx context.Context, restaurantID int64) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"restaurant_id",
		"reservation_settings",
		"manager_settings",
		"updated_at",
	).
		From("restaurant_settings").
		Where(squirrel.Eq{"restaurant_id": restaurantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings        domain.Settings
		reservationJSON []byte
		managerJSON     []byte
		updatedAt       sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.RestaurantID,
		&reservationJSON,
		&managerJSON,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(reservationJSON, &settings.Reservation); err != nil {
		return nil, fmt.Errorf("%w: Get - decode reservation_settings: %v", ErrEncode, err)
	}
	if err := json.Unmarshal(managerJSON, &settings.Manager); err != nil {
		return nil, fmt.Errorf("%w: Get - decode manager_settings: %v", ErrEncode, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или полностью перезаписывает настройки ресторана.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Upsert(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	reservationJSON, err := json.Marshal(settings.Reservation)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - encode reservation_settings: %v", ErrEncode, err)
	}
	managerJSON, err := json.Marshal(settings.Manager)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - encode manager_settings: %v", ErrEncode, err)
	}

	// lib/pq отправляет []byte как bytea, поэтому JSONB передаем строкой
	query, args, err := psqlbuilder.Insert("restaurant_settings").
		Columns("restaurant_id", "reservation_settings", "manager_settings").
		Values(settings.RestaurantID, string(reservationJSON), string(managerJSON)).
		Suffix(`ON CONFLICT (restaurant_id) DO UPDATE SET
			reservation_settings = EXCLUDED.reservation_settings,
			manager_settings = EXCLUDED.manager_settings,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
