package waitlist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
)

type mockWaitlistRepo struct{ mock.Mock }

func (m *mockWaitlistRepo) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, entry)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	entry.ID = 11
	entry.CreatedAt = fixedNow.Add(-time.Minute)
	return entry, nil
}

func (m *mockWaitlistRepo) ListByRestaurant(ctx context.Context, restaurantID int64, status *domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	args := m.Called(ctx, restaurantID, status)
	entries, _ := args.Get(0).([]*domain.WaitlistEntry)
	return entries, args.Error(1)
}

func (m *mockWaitlistRepo) GetByID(ctx context.Context, restaurantID, id int64) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, restaurantID, id)
	entry, _ := args.Get(0).(*domain.WaitlistEntry)
	return entry, args.Error(1)
}

type stubTables []domain.Table

func (s stubTables) ListByRestaurant(context.Context, int64) ([]domain.Table, error) {
	return s, nil
}

type stubManagers struct{}

func (stubManagers) IsManager(_ context.Context, _, userID int64) (bool, error) {
	return userID == 100, nil
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var fixedNow = time.Date(2025, 10, 18, 19, 30, 0, 0, time.UTC)

func newService(repo *mockWaitlistRepo, tables stubTables) *Service {
	svc := NewService(repo, tables, stubManagers{}, logger.Nop())
	svc.timeProvider = fixedTime(fixedNow)
	return svc
}

func TestService_Add(t *testing.T) {
	tests := []struct {
		name      string
		req       models.AddEntryRequest
		wantField string
	}{
		{name: "valid", req: models.AddEntryRequest{GuestName: "  Анна ", PartySize: 4}},
		{name: "blank name", req: models.AddEntryRequest{GuestName: "  ", PartySize: 4}, wantField: "guestName"},
		{name: "name too long", req: models.AddEntryRequest{GuestName: strings.Repeat("я", 101), PartySize: 4}, wantField: "guestName"},
		{name: "zero party", req: models.AddEntryRequest{GuestName: "Анна", PartySize: 0}, wantField: "partySize"},
		{name: "party too big", req: models.AddEntryRequest{GuestName: "Анна", PartySize: 51}, wantField: "partySize"},
		{name: "notes too long", req: models.AddEntryRequest{GuestName: "Анна", PartySize: 2, Notes: ptr.Ptr(strings.Repeat("x", 501))}, wantField: "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockWaitlistRepo{}
			repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.WaitlistEntry) bool {
				return e.Status == domain.WaitlistWaiting && e.GuestName == "Анна"
			})).Return(nil).Maybe()

			req := tt.req
			req.UserID = 100
			req.RestaurantID = 5

			resp, err := newService(repo, nil).Add(context.Background(), &req)
			if tt.wantField != "" {
				var vErr *rules.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantField, vErr.Field)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(11), resp.ID)
			assert.Equal(t, "waiting", resp.Status)
			assert.Equal(t, 1, resp.WaitMinutes)
		})
	}
}

func TestService_Add_AccessDenied(t *testing.T) {
	repo := &mockWaitlistRepo{}

	_, err := newService(repo, nil).Add(context.Background(), &models.AddEntryRequest{
		UserID: 7, RestaurantID: 5, GuestName: "Анна", PartySize: 2,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_List_FiltersByStatus(t *testing.T) {
	repo := &mockWaitlistRepo{}
	waiting := domain.WaitlistWaiting
	repo.On("ListByRestaurant", mock.Anything, int64(5), &waiting).Return([]*domain.WaitlistEntry{
		{ID: 1, GuestName: "A", PartySize: 2, Status: domain.WaitlistWaiting, CreatedAt: fixedNow.Add(-25 * time.Minute)},
	}, nil)
	svc := newService(repo, nil)

	resp, err := svc.List(context.Background(), 100, 5, ptr.Ptr("waiting"))
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 25, resp.Entries[0].WaitMinutes)

	_, err = svc.List(context.Background(), 100, 5, ptr.Ptr("lost"))
	assert.ErrorIs(t, err, rules.ErrValidation)
}

func TestService_EligibleTables(t *testing.T) {
	tables := stubTables{
		{ID: 1, Seats: 2, Status: domain.TableAvailable},
		{ID: 2, Seats: 6, Status: domain.TableOccupied},
		{ID: 3, Seats: 4, Status: domain.TableAvailable},
		{ID: 4, Seats: 8, Status: domain.TableAvailable},
	}

	t.Run("waiting entry", func(t *testing.T) {
		repo := &mockWaitlistRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(1)).
			Return(&domain.WaitlistEntry{ID: 1, PartySize: 4, Status: domain.WaitlistWaiting}, nil)

		resp, err := newService(repo, tables).EligibleTables(context.Background(), 100, 5, 1)
		require.NoError(t, err)
		require.Len(t, resp.Tables, 2)
		assert.Equal(t, int64(3), resp.Tables[0].ID)
		assert.Equal(t, int64(4), resp.Tables[1].ID)
	})

	t.Run("already seated", func(t *testing.T) {
		repo := &mockWaitlistRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(2)).
			Return(&domain.WaitlistEntry{ID: 2, PartySize: 2, Status: domain.WaitlistSeated}, nil)

		resp, err := newService(repo, tables).EligibleTables(context.Background(), 100, 5, 2)
		require.NoError(t, err)
		assert.NotNil(t, resp.Tables)
		assert.Empty(t, resp.Tables)
	})

	t.Run("no table fits", func(t *testing.T) {
		repo := &mockWaitlistRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(3)).
			Return(&domain.WaitlistEntry{ID: 3, PartySize: 12, Status: domain.WaitlistWaiting}, nil)

		resp, err := newService(repo, tables).EligibleTables(context.Background(), 100, 5, 3)
		require.NoError(t, err)
		assert.NotNil(t, resp.Tables)
		assert.Empty(t, resp.Tables)
	})

	t.Run("missing entry", func(t *testing.T) {
		repo := &mockWaitlistRepo{}
		repo.On("GetByID", mock.Anything, int64(5), int64(9)).Return(nil, waitlistRepo.ErrEntryNotFound)

		_, err := newService(repo, tables).EligibleTables(context.Background(), 100, 5, 9)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}
