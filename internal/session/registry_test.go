package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/resortbooking/internal/cache"
	"github.com/Domenick1991/resortbooking/internal/clock"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/logging"
	"github.com/Domenick1991/resortbooking/internal/metrics"
	"github.com/Domenick1991/resortbooking/internal/service/wizard"
	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveSession(ctx context.Context, id string, state domain.BookingState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockStore) LoadSession(ctx context.Context, id string) (*domain.BookingState, error) {
	args := m.Called(ctx, id)
	state, _ := args.Get(0).(*domain.BookingState)
	return state, args.Error(1)
}

func (m *MockStore) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func testConfig() wizard.Config {
	cfg := wizard.DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(now)
	ids := []string{"s-1", "s-2", "s-3"}
	opts = append([]Option{
		WithClock(fake),
		WithLogger(logging.Discard()),
		WithIdleTTL(10 * time.Minute),
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}),
	}, opts...)
	r := NewRegistry(testConfig(), opts...)
	t.Cleanup(r.Close)
	return r, fake
}

func TestRegistry_StartGetEnd(t *testing.T) {
	m := metrics.NewWizardMetrics(prometheus.NewRegistry())
	r, _ := newTestRegistry(t, WithMetrics(m))
	ctx := context.Background()

	w, err := r.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s-1", w.ID())
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Same(t, w, got)

	require.NoError(t, r.End(ctx, "s-1"))
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.End(ctx, "s-1"), ErrSessionNotFound)
}

func TestRegistry_Apply(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.Start(ctx)
	require.NoError(t, err)

	view, err := r.Apply(ctx, "s-1", wizard.Intent{Type: wizard.IntentSelectDay, Day: "2026-11-01"})
	require.NoError(t, err)
	require.NotNil(t, view.State.Dates.CheckIn)

	view, err = r.Apply(ctx, "s-1", wizard.Intent{Type: wizard.IntentGoToStep, Step: 5})
	assert.ErrorIs(t, err, wizard.ErrStepNotReachable)
	assert.Equal(t, domain.StepDates, view.Step)

	_, err = r.Apply(ctx, "missing", wizard.Intent{Type: wizard.IntentBack})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_Sweep(t *testing.T) {
	r, fake := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.Start(ctx)
	require.NoError(t, err)
	fake.Advance(8 * time.Minute)
	_, err = r.Start(ctx)
	require.NoError(t, err)

	fake.Advance(5 * time.Minute)
	assert.Equal(t, 1, r.Sweep(fake.Now()))

	_, err = r.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(ctx, "s-2")
	assert.NoError(t, err)
}

func TestRegistry_SweepCancelsPendingSubmission(t *testing.T) {
	r, fake := newTestRegistry(t, WithIdleTTL(time.Second))
	ctx := context.Background()

	w, err := r.Start(ctx)
	require.NoError(t, err)
	_, _ = w.SelectDay(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	_, _ = w.SelectDay(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC))
	first, last, email, phone := "Ada", "Lovelace", "ada@example.com", "555"
	require.NoError(t, w.UpdateGuest(domain.GuestDetailsPatch{FirstName: &first, LastName: &last, Email: &email, Phone: &phone}))
	for i := 0; i < 4; i++ {
		require.NoError(t, w.Continue())
	}
	require.Equal(t, domain.StepReview, w.State().CurrentStep)
	require.NoError(t, w.Submit())
	require.Equal(t, 1, fake.Pending())

	assert.Equal(t, 1, r.Sweep(now.Add(2*time.Second)))
	assert.Equal(t, 0, fake.Pending())

	fake.Advance(time.Minute)
	assert.Equal(t, domain.StepReview, w.State().CurrentStep)
	assert.Nil(t, w.State().Confirmation)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestRegistry_EndWhilePublishingDoesNotResurrect(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 10*time.Minute)
	ctx := context.Background()

	cfg := testConfig()
	cfg.ConfirmationsTopic = "booking.confirmations"
	fake := clock.NewFake(now)

	var r *Registry
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, "booking.confirmations", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { assert.NoError(t, r.End(ctx, "s-1")) }).
		Return(nil).Once()

	r = NewRegistry(cfg,
		WithClock(fake),
		WithLogger(logging.Discard()),
		WithStore(store),
		WithPublisher(pub),
		WithIDGenerator(func() string { return "s-1" }),
	)
	t.Cleanup(r.Close)

	w, err := r.Start(ctx)
	require.NoError(t, err)
	_, _ = w.SelectDay(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	_, _ = w.SelectDay(time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC))
	first, last, email, phone := "Ada", "Lovelace", "ada@example.com", "555"
	require.NoError(t, w.UpdateGuest(domain.GuestDetailsPatch{FirstName: &first, LastName: &last, Email: &email, Phone: &phone}))
	for i := 0; i < 4; i++ {
		require.NoError(t, w.Continue())
	}
	require.NoError(t, w.Submit())
	require.True(t, mr.Exists("session:s-1"))

	fake.Advance(2 * time.Second)

	pub.AssertExpectations(t)
	assert.False(t, mr.Exists("session:s-1"))
	_, err = r.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_PersistSkipsEndedSession(t *testing.T) {
	store := new(MockStore)
	store.On("SaveSession", mock.Anything, "s-1", mock.Anything).Return(nil).Once()
	store.On("DeleteSession", mock.Anything, "s-1").Return(nil).Once()

	r, _ := newTestRegistry(t, WithStore(store))
	ctx := context.Background()

	w, err := r.Start(ctx)
	require.NoError(t, err)
	require.NoError(t, r.End(ctx, "s-1"))

	require.NoError(t, r.Persist(ctx, w))
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "SaveSession", 1)
}

func TestRegistry_RehydratesFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 10*time.Minute)
	ctx := context.Background()

	first, _ := newTestRegistry(t, WithStore(store))
	_, err := first.Start(ctx)
	require.NoError(t, err)
	_, err = first.Apply(ctx, "s-1", wizard.Intent{Type: wizard.IntentSelectDay, Day: "2026-11-01"})
	require.NoError(t, err)
	_, err = first.Apply(ctx, "s-1", wizard.Intent{Type: wizard.IntentSelectDay, Day: "2026-11-04"})
	require.NoError(t, err)
	_, err = first.Apply(ctx, "s-1", wizard.Intent{Type: wizard.IntentContinue})
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:s-1"))

	second, _ := newTestRegistry(t, WithStore(store))
	w, err := second.Get(ctx, "s-1")
	require.NoError(t, err)
	state := w.State()
	assert.Equal(t, domain.StepAccommodation, state.CurrentStep)
	assert.Equal(t, 3, state.Dates.Nights())
	require.NotNil(t, state.Accommodation)

	require.NoError(t, second.End(ctx, "s-1"))
	assert.False(t, mr.Exists("session:s-1"))
}

func TestRegistry_StoreErrors(t *testing.T) {
	store := new(MockStore)
	store.On("LoadSession", mock.Anything, "broken").Return(nil, errors.New("connection refused"))
	store.On("SaveSession", mock.Anything, "s-1", mock.Anything).Return(errors.New("connection refused"))

	r, _ := newTestRegistry(t, WithStore(store))
	ctx := context.Background()

	_, err := r.Get(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)

	// saving is best effort
	w, err := r.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s-1", w.ID())
	store.AssertExpectations(t)
}
