package manager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
)

// Repository хранит, кто из пользователей управляет рестораном
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория менеджеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsManager проверяет, что пользователь - менеджер ресторана
func (r *Repository) IsManager(ctx context.Context, restaurantID, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("restaurant_managers").
		Where(squirrel.Eq{"restaurant_id": restaurantID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsManager - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsManager - scan: %v", ErrScanRow, err)
	}

	return true, nil
}
