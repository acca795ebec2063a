package tables

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	tableRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/table"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/tables/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
)

type mockTableRepo struct{ mock.Mock }

func (m *mockTableRepo) ListByRestaurant(ctx context.Context, restaurantID int64) ([]domain.Table, error) {
	args := m.Called(ctx, restaurantID)
	tables, _ := args.Get(0).([]domain.Table)
	return tables, args.Error(1)
}

func (m *mockTableRepo) UpdateStatus(ctx context.Context, restaurantID, id int64, status domain.TableStatus) (*domain.Table, error) {
	args := m.Called(ctx, restaurantID, id, status)
	table, _ := args.Get(0).(*domain.Table)
	return table, args.Error(1)
}

type stubManagers struct{ err error }

func (s stubManagers) IsManager(_ context.Context, _, userID int64) (bool, error) {
	return userID == 100, s.err
}

func TestService_List(t *testing.T) {
	repo := &mockTableRepo{}
	repo.On("ListByRestaurant", mock.Anything, int64(5)).Return([]domain.Table{
		{ID: 1, RestaurantID: 5, Name: "T1", Seats: 2, Status: domain.TableAvailable},
		{ID: 2, RestaurantID: 5, Name: "T2", Seats: 6, Status: domain.TableOccupied},
	}, nil)
	svc := NewService(repo, stubManagers{}, logger.Nop())

	resp, err := svc.List(context.Background(), 100, 5)
	require.NoError(t, err)
	require.Len(t, resp.Tables, 2)
	assert.Equal(t, "occupied", resp.Tables[1].Status)

	_, err = svc.List(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_List_ManagerLookupFails(t *testing.T) {
	svc := NewService(&mockTableRepo{}, stubManagers{err: errors.New("timeout")}, logger.Nop())

	_, err := svc.List(context.Background(), 100, 5)
	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		repoErr error
		wantErr error
	}{
		{name: "cleaning", status: "cleaning"},
		{name: "unknown status", status: "broken", wantErr: rules.ErrValidation},
		{name: "missing table", status: "available", repoErr: tableRepo.ErrTableNotFound, wantErr: ErrTableNotFound},
		{name: "store failure", status: "available", repoErr: errors.New("conn reset"), wantErr: ErrCollaboratorUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTableRepo{}
			if tt.repoErr != nil {
				repo.On("UpdateStatus", mock.Anything, int64(5), int64(3), domain.TableStatus(tt.status)).Return(nil, tt.repoErr)
			} else {
				repo.On("UpdateStatus", mock.Anything, int64(5), int64(3), domain.TableStatus(tt.status)).
					Return(&domain.Table{ID: 3, RestaurantID: 5, Seats: 4, Status: domain.TableStatus(tt.status)}, nil).Maybe()
			}
			svc := NewService(repo, stubManagers{}, logger.Nop())

			resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
				UserID: 100, RestaurantID: 5, TableID: 3, Status: tt.status,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}
