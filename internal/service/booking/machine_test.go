package booking

import (
	"regexp"
	"testing"
	"time"

	"github.com/Domenick1991/resortbooking/internal/clock"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCodeGenerator struct {
	mock.Mock
}

func (m *MockCodeGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

var start = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func newTestMachine(opts ...Option) (*Machine, *clock.Fake) {
	fake := clock.NewFake(start)
	opts = append([]Option{WithClock(fake)}, opts...)
	return NewMachine(domain.DefaultResortConfig(), opts...), fake
}

func fillBooking(m *Machine, nights int) {
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, nights)
	m.SetDates(domain.BookingDates{CheckIn: &in, CheckOut: &out})
	m.SelectAccommodation(domain.VillaData)
	first, last, email, phone := "Ada", "Lovelace", "ada@example.com", "+1 555 0100"
	m.UpdateGuestDetails(domain.GuestDetailsPatch{FirstName: &first, LastName: &last, Email: &email, Phone: &phone})
}

func TestMachine_AdvanceBlockedWithoutDates(t *testing.T) {
	m, _ := newTestMachine()

	assert.False(t, m.Advance())
	assert.Equal(t, domain.StepDates, m.State().CurrentStep)

	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	m.SetDates(domain.BookingDates{CheckIn: &in})
	assert.False(t, m.Advance())
	assert.Equal(t, domain.StepDates, m.State().CurrentStep)
}

func TestMachine_AdvanceThroughSteps(t *testing.T) {
	m, _ := newTestMachine()
	fillBooking(m, 2)

	for step := domain.StepAccommodation; step <= domain.StepConfirmation; step++ {
		require.True(t, m.Advance())
		assert.Equal(t, step, m.State().CurrentStep)
	}
	assert.False(t, m.Advance())
}

func TestMachine_AdvanceBlockedOnGuestDetails(t *testing.T) {
	m, _ := newTestMachine()
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 2)
	m.SetDates(domain.BookingDates{CheckIn: &in, CheckOut: &out})
	m.SelectAccommodation(domain.VillaData)
	m.JumpTo(domain.StepGuestDetails)

	assert.False(t, m.Advance())
	assert.Equal(t, domain.StepGuestDetails, m.State().CurrentStep)
}

func TestMachine_RetreatNeverBlocked(t *testing.T) {
	m, _ := newTestMachine()
	m.JumpTo(domain.StepReview)

	for want := domain.StepGuestDetails; want >= domain.StepDates; want-- {
		assert.True(t, m.Retreat())
		assert.Equal(t, want, m.State().CurrentStep)
	}
	assert.False(t, m.Retreat())
	assert.Equal(t, domain.StepDates, m.State().CurrentStep)
}

func TestMachine_JumpToIsUngated(t *testing.T) {
	m, _ := newTestMachine()
	m.JumpTo(domain.StepReview)
	assert.Equal(t, domain.StepReview, m.State().CurrentStep)
}

func TestMachine_SubmitCompletesAfterDelay(t *testing.T) {
	codes := &MockCodeGenerator{}
	codes.On("Generate").Return("CYP-ABC234").Once()

	var hooked []domain.BookingState
	m, fake := newTestMachine(
		WithCodeGenerator(codes),
		WithCompletionHook(func(s domain.BookingState) { hooked = append(hooked, s) }),
	)
	fillBooking(m, 3)
	m.ToggleAddOn("forest-massage")
	m.JumpTo(domain.StepReview)

	require.True(t, m.Submit())
	s := m.State()
	assert.True(t, s.IsLoading)
	assert.Nil(t, s.Confirmation)
	assert.Nil(t, s.Pricing)
	assert.Equal(t, domain.StepReview, s.CurrentStep)

	fake.Advance(DefaultSubmitDelay - time.Millisecond)
	assert.True(t, m.State().IsLoading)

	fake.Advance(time.Millisecond)
	s = m.State()
	assert.False(t, s.IsLoading)
	assert.Equal(t, domain.StepConfirmation, s.CurrentStep)
	require.NotNil(t, s.Confirmation)
	assert.Equal(t, "CYP-ABC234", s.Confirmation.ConfirmationNumber)
	assert.Equal(t, start.Add(DefaultSubmitDelay), s.Confirmation.CreatedAt)
	require.NotNil(t, s.Pricing)
	assert.InDelta(t, 3362.2, s.Pricing.Total, 1e-9)

	require.Len(t, hooked, 1)
	assert.Equal(t, s, hooked[0])
	codes.AssertExpectations(t)
}

func TestMachine_StoredPricingIsSnapshot(t *testing.T) {
	m, fake := newTestMachine()
	fillBooking(m, 2)
	m.JumpTo(domain.StepReview)
	m.Submit()
	fake.Advance(DefaultSubmitDelay)

	snapshot := *m.State().Pricing
	m.ToggleAddOn("couples-retreat")

	live, ok := m.LivePricing()
	require.True(t, ok)
	assert.Equal(t, snapshot, *m.State().Pricing)
	assert.Equal(t, snapshot.AddOnsTotal+450, live.AddOnsTotal)
}

func TestMachine_SecondSubmitKeepsFirstConfirmation(t *testing.T) {
	codes := &MockCodeGenerator{}
	codes.On("Generate").Return("CYP-FIRST2").Once()

	hooks := 0
	m, fake := newTestMachine(WithCodeGenerator(codes), WithCompletionHook(func(domain.BookingState) { hooks++ }))
	fillBooking(m, 2)
	m.JumpTo(domain.StepReview)

	m.Submit()
	fake.Advance(500 * time.Millisecond)
	m.Submit()

	fake.Advance(time.Second)
	assert.True(t, m.State().IsLoading)
	assert.Equal(t, "CYP-FIRST2", m.State().Confirmation.ConfirmationNumber)

	fake.Advance(time.Second)
	s := m.State()
	assert.False(t, s.IsLoading)
	assert.Equal(t, "CYP-FIRST2", s.Confirmation.ConfirmationNumber)
	assert.Equal(t, 1, hooks)
	codes.AssertExpectations(t)
}

func TestMachine_CloseCancelsPendingSubmission(t *testing.T) {
	hooks := 0
	m, fake := newTestMachine(WithCompletionHook(func(domain.BookingState) { hooks++ }))
	fillBooking(m, 2)
	m.JumpTo(domain.StepReview)
	m.Submit()

	m.Close()
	assert.Equal(t, 0, fake.Pending())

	fake.Advance(time.Minute)
	s := m.State()
	assert.Nil(t, s.Confirmation)
	assert.Equal(t, domain.StepReview, s.CurrentStep)
	assert.Equal(t, 0, hooks)
	assert.False(t, m.Submit())
}

func TestMachine_ResetCancelsPendingSubmission(t *testing.T) {
	m, fake := newTestMachine()
	fillBooking(m, 2)
	m.JumpTo(domain.StepReview)
	m.Submit()

	m.Reset()
	fake.Advance(time.Minute)

	assert.Equal(t, domain.InitialState(), m.State())
}

func TestMachine_Restore(t *testing.T) {
	m, fake := newTestMachine()
	fillBooking(m, 4)
	m.JumpTo(domain.StepReview)
	m.Submit()
	saved := m.State()

	other, _ := newTestMachine()
	other.Restore(saved)
	s := other.State()
	assert.False(t, s.IsLoading)
	assert.Equal(t, domain.StepReview, s.CurrentStep)
	assert.Equal(t, 4, other.Nights())

	m.Restore(saved)
	fake.Advance(time.Minute)
	assert.Nil(t, m.State().Confirmation)
}

func TestMachine_RealClockEndToEnd(t *testing.T) {
	done := make(chan domain.BookingState, 1)
	m := NewMachine(domain.DefaultResortConfig(),
		WithSubmitDelay(10*time.Millisecond),
		WithCompletionHook(func(s domain.BookingState) { done <- s }),
	)
	fillBooking(m, 2)
	for m.Advance() {
		if m.State().CurrentStep == domain.StepReview {
			break
		}
	}
	require.Equal(t, domain.StepReview, m.State().CurrentStep)
	require.True(t, m.Submit())

	select {
	case s := <-done:
		assert.Regexp(t, regexp.MustCompile(`^CYP-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`), s.Confirmation.ConfirmationNumber)
		assert.Equal(t, domain.StepConfirmation, s.CurrentStep)
	case <-time.After(2 * time.Second):
		t.Fatal("submission did not complete")
	}
}
