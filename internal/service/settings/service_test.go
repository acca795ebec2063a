package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	settingsCache "github.com/m04kA/SMC-RestaurantService/internal/infra/cache/settings"
	settingsRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/settings"
	timeslotRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-RestaurantService/internal/rules"
	"github.com/m04kA/SMC-RestaurantService/internal/service/settings/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context, restaurantID int64) (*domain.Settings, error) {
	args := m.Called(ctx, restaurantID)
	s, _ := args.Get(0).(*domain.Settings)
	return s, args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, s)
	saved, _ := args.Get(0).(*domain.Settings)
	return saved, args.Error(1)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) ListByRestaurant(ctx context.Context, restaurantID int64, weekday *time.Weekday) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, restaurantID, weekday)
	slots, _ := args.Get(0).([]domain.TimeSlot)
	return slots, args.Error(1)
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	args := m.Called(ctx, slot)
	return slot, args.Error(0)
}

func (m *mockSlotRepo) Update(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	args := m.Called(ctx, slot)
	return slot, args.Error(0)
}

func (m *mockSlotRepo) Delete(ctx context.Context, restaurantID, id int64) error {
	return m.Called(ctx, restaurantID, id).Error(0)
}

type stubManagers struct {
	managers map[int64]bool
	err      error
}

func (s stubManagers) IsManager(_ context.Context, _, userID int64) (bool, error) {
	return s.managers[userID], s.err
}

// passTx выполняет fn без настоящей транзакции
type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	service  *Service
	settings *mockSettingsRepo
	slots    *mockSlotRepo
	cache    *settingsCache.Cache
	redis    *miniredis.Miniredis
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		settings: &mockSettingsRepo{},
		slots:    &mockSlotRepo{},
		cache:    settingsCache.NewCache(client, time.Minute),
		redis:    mr,
	}

	var noMetrics *metrics.Metrics
	f.service = NewService(
		f.settings,
		f.slots,
		stubManagers{managers: map[int64]bool{100: true}},
		f.cache,
		passTx{},
		noMetrics,
		logger.Nop(),
	)

	return f
}

func TestService_Get_DefaultsWhenNoRow(t *testing.T) {
	f := newFixture(t)
	f.settings.On("Get", mock.Anything, int64(5)).Return(nil, settingsRepo.ErrSettingsNotFound).Once()

	got, err := f.service.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(5).Reservation, got.Reservation)

	// Второй вызов обслуживается кэшем
	got, err = f.service.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Reservation.LeadTimeHours)

	f.settings.AssertExpectations(t)
}

func TestService_Get_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.settings.On("Get", mock.Anything, int64(5)).Return(nil, errors.New("connection refused"))

	_, err := f.service.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
}

func TestService_Get_RedisDownFallsBackToStore(t *testing.T) {
	f := newFixture(t)
	stored := domain.DefaultSettings(5)
	stored.Reservation.LeadTimeHours = 8
	f.settings.On("Get", mock.Anything, int64(5)).Return(stored, nil)

	f.redis.Close()

	got, err := f.service.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Reservation.LeadTimeHours)
}

func TestService_Save_AccessDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Save(context.Background(), &models.SaveSettingsRequest{UserID: 7, RestaurantID: 5})
	assert.ErrorIs(t, err, ErrAccessDenied)
	f.settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestService_Save_PersistsCoercedSettingsAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cache.Set(ctx, domain.DefaultSettings(5)))

	f.slots.On("ListByRestaurant", mock.Anything, int64(5), (*time.Weekday)(nil)).Return([]domain.TimeSlot{}, nil)
	f.slots.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.TimeSlot) bool {
		return s.Weekday == time.Saturday && s.StartTime == "19:00"
	})).Return(nil).Once()
	f.settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.Settings) bool {
		return s.RestaurantID == 5 && s.Reservation.LeadTimeHours == 2
	})).Return(&domain.Settings{RestaurantID: 5, UpdatedAt: time.Now()}, nil).Once()

	resp, err := f.service.Save(ctx, &models.SaveSettingsRequest{
		UserID:       100,
		RestaurantID: 5,
		ReservationSettings: models.RawGuestSettings{
			LeadTimeHours: types.NewLooseNumber(""),
		},
		TimeSlots: []models.SlotEdit{
			{Weekday: int(time.Saturday), StartTime: "19:00", EndTime: "20:30", MaxCovers: 30},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SlotsCreated)
	assert.False(t, resp.Settings.IsDefault)

	assert.False(t, f.redis.Exists("restaurant:settings:5"))
	f.settings.AssertExpectations(t)
	f.slots.AssertExpectations(t)
}

func TestService_Save_ValidationErrorSkipsWrites(t *testing.T) {
	f := newFixture(t)
	f.slots.On("ListByRestaurant", mock.Anything, int64(5), (*time.Weekday)(nil)).Return([]domain.TimeSlot{}, nil)

	_, err := f.service.Save(context.Background(), &models.SaveSettingsRequest{
		UserID:       100,
		RestaurantID: 5,
		PaymentSettings: models.RawPaymentSettings{
			BaseAmount: types.NewLooseNumber("-10"),
		},
	})
	require.ErrorIs(t, err, rules.ErrValidation)
	f.settings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestService_Save_ConcurrentDuplicateFromIndex(t *testing.T) {
	f := newFixture(t)
	f.slots.On("ListByRestaurant", mock.Anything, int64(5), (*time.Weekday)(nil)).Return([]domain.TimeSlot{}, nil)
	f.slots.On("Create", mock.Anything, mock.Anything).Return(timeslotRepo.ErrDuplicateSlot)
	f.settings.On("Upsert", mock.Anything, mock.Anything).Return(&domain.Settings{RestaurantID: 5}, nil)

	_, err := f.service.Save(context.Background(), &models.SaveSettingsRequest{
		UserID:       100,
		RestaurantID: 5,
		TimeSlots: []models.SlotEdit{
			{Weekday: int(time.Monday), StartTime: "12:00", EndTime: "13:00", MaxCovers: 10},
		},
	})

	var dup *rules.DuplicateSlotError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, time.Monday, dup.Weekday)
}
