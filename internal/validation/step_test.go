package validation

import (
	"testing"
	"time"

	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func stayState(nights int) domain.BookingState {
	s := domain.InitialState()
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, nights)
	s.Dates = domain.BookingDates{CheckIn: &in, CheckOut: &out}
	villa := domain.VillaData
	s.Accommodation = &villa
	return s
}

func withGuest(s domain.BookingState) domain.BookingState {
	s.GuestDetails.FirstName = "Ada"
	s.GuestDetails.LastName = "Lovelace"
	s.GuestDetails.Email = "ada@example.com"
	s.GuestDetails.Phone = "+1 555 0100"
	return s
}

func TestIsStepValid_Dates(t *testing.T) {
	cfg := domain.DefaultResortConfig()

	testCases := []struct {
		name     string
		state    domain.BookingState
		expected bool
	}{
		{name: "No dates", state: domain.InitialState(), expected: false},
		{name: "Below minimum", state: stayState(1), expected: false},
		{name: "Exactly minimum", state: stayState(2), expected: true},
		{name: "Above minimum", state: stayState(7), expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsStepValid(domain.StepDates, tc.state, cfg))
		})
	}

	checkInOnly := domain.InitialState()
	in := time.Now()
	checkInOnly.Dates.CheckIn = &in
	assert.False(t, IsStepValid(domain.StepDates, checkInOnly, cfg))
}

func TestIsStepValid_AccommodationAndAddOns(t *testing.T) {
	cfg := domain.DefaultResortConfig()

	assert.False(t, IsStepValid(domain.StepAccommodation, domain.InitialState(), cfg))
	assert.True(t, IsStepValid(domain.StepAccommodation, stayState(2), cfg))
	assert.True(t, IsStepValid(domain.StepAddOns, domain.InitialState(), cfg))
}

func TestIsStepValid_GuestDetails(t *testing.T) {
	cfg := domain.DefaultResortConfig()
	s := withGuest(stayState(2))
	assert.True(t, IsStepValid(domain.StepGuestDetails, s, cfg))

	fields := map[string]func(*domain.GuestDetails){
		"first name": func(g *domain.GuestDetails) { g.FirstName = "" },
		"last name":  func(g *domain.GuestDetails) { g.LastName = "" },
		"email":      func(g *domain.GuestDetails) { g.Email = "" },
		"phone":      func(g *domain.GuestDetails) { g.Phone = "" },
	}
	for name, clear := range fields {
		t.Run("missing "+name, func(t *testing.T) {
			missing := s.Clone()
			clear(&missing.GuestDetails)
			assert.False(t, IsStepValid(domain.StepGuestDetails, missing, cfg))
		})
	}

	optional := s.Clone()
	optional.GuestDetails.Country = ""
	optional.GuestDetails.Address = ""
	assert.True(t, IsStepValid(domain.StepGuestDetails, optional, cfg))
}

func TestIsStepValid_ReviewRevalidates(t *testing.T) {
	cfg := domain.DefaultResortConfig()

	complete := withGuest(stayState(3))
	assert.True(t, IsStepValid(domain.StepReview, complete, cfg))

	noGuest := stayState(3)
	assert.False(t, IsStepValid(domain.StepReview, noGuest, cfg))

	shortStay := withGuest(stayState(1))
	assert.False(t, IsStepValid(domain.StepReview, shortStay, cfg))

	noVilla := complete.Clone()
	noVilla.Accommodation = nil
	assert.False(t, IsStepValid(domain.StepReview, noVilla, cfg))
}

func TestIsStepValid_Stable(t *testing.T) {
	cfg := domain.DefaultResortConfig()
	s := withGuest(stayState(2))

	for step := domain.StepDates; step <= domain.StepConfirmation; step++ {
		first := IsStepValid(step, s, cfg)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, IsStepValid(step, s, cfg))
		}
	}
}

func TestIsStepClickable(t *testing.T) {
	cfg := domain.DefaultResortConfig()

	s := domain.InitialState()
	villa := domain.VillaData
	s.Accommodation = &villa
	assert.True(t, IsStepClickable(domain.StepDates, s, cfg))
	assert.False(t, IsStepClickable(domain.StepAccommodation, s, cfg))

	s = stayState(2)
	s.CurrentStep = domain.StepGuestDetails
	assert.True(t, IsStepClickable(domain.StepDates, s, cfg))
	assert.True(t, IsStepClickable(domain.StepAddOns, s, cfg))
	assert.True(t, IsStepClickable(domain.StepGuestDetails, s, cfg))
	assert.False(t, IsStepClickable(domain.StepReview, s, cfg))

	// valid guest details do not open a step that has not been reached
	s = withGuest(s)
	assert.False(t, IsStepClickable(domain.StepReview, s, cfg))
	s.CurrentStep = domain.StepReview
	assert.True(t, IsStepClickable(domain.StepReview, s, cfg))
}

func TestIsStepClickable_NoSkippingAhead(t *testing.T) {
	cfg := domain.DefaultResortConfig()

	// the villa is preselected, so steps 2 and 3 are valid without dates
	s := domain.InitialState()
	villa := domain.VillaData
	s.Accommodation = &villa
	s = withGuest(s)

	for _, step := range []domain.Step{domain.StepAddOns, domain.StepGuestDetails, domain.StepReview} {
		assert.False(t, IsStepClickable(step, s, cfg), "step %d", step)
	}
}
