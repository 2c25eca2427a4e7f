package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNights(t *testing.T) {
	day0 := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		checkOut time.Time
		expected int
	}{
		{name: "Two whole days", checkOut: day0.AddDate(0, 0, 2), expected: 2},
		{name: "Partial day rounds up", checkOut: day0.Add(25 * time.Hour), expected: 2},
		{name: "Same instant", checkOut: day0, expected: 0},
		{name: "One hour", checkOut: day0.Add(time.Hour), expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CalculateNights(day0, tc.checkOut))
		})
	}
}

func TestBookingDates_Nights(t *testing.T) {
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)

	assert.Equal(t, 0, BookingDates{}.Nights())
	assert.Equal(t, 0, BookingDates{CheckIn: &in}.Nights())
	assert.Equal(t, 3, BookingDates{CheckIn: &in, CheckOut: &out}.Nights())
}

func TestGuestDetailsPatch_Apply(t *testing.T) {
	first := "Ada"
	occasions := []string{"Anniversary"}
	g := InitialState().GuestDetails
	g.Email = "ada@example.com"

	updated := GuestDetailsPatch{FirstName: &first, SpecialOccasions: &occasions}.Apply(g)

	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, "United States", updated.Country)
	assert.Equal(t, []string{"Anniversary"}, updated.SpecialOccasions)

	occasions[0] = "Birthday"
	assert.Equal(t, []string{"Anniversary"}, updated.SpecialOccasions)
}

func TestBookingState_Clone(t *testing.T) {
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	villa := VillaData
	s := InitialState()
	s.Dates.CheckIn = &in
	s.Accommodation = &villa
	s.SelectedAddOns = append(s.SelectedAddOns, SelectedAddOn{ID: "photography", Quantity: 1})
	s.Errors["dates"] = "too short"

	c := s.Clone()
	c.SelectedAddOns[0].Quantity = 3
	c.Errors["dates"] = "changed"
	*c.Dates.CheckIn = in.AddDate(0, 0, 1)
	c.Accommodation.Features[0].Label = "changed"

	assert.Equal(t, 1, s.SelectedAddOns[0].Quantity)
	assert.Equal(t, "too short", s.Errors["dates"])
	assert.Equal(t, in, *s.Dates.CheckIn)
	assert.Equal(t, "King Bed", s.Accommodation.Features[0].Label)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "Dates", StepDates.String())
	assert.Equal(t, "Confirmed", StepConfirmation.String())
	assert.Equal(t, "unknown", Step(7).String())
	assert.False(t, Step(0).Valid())
}

func TestFindAddOn(t *testing.T) {
	addon, ok := FindAddOn(AddOnsData, "forest-massage")
	assert.True(t, ok)
	assert.Equal(t, 250.0, addon.Price)

	_, ok = FindAddOn(AddOnsData, "helicopter")
	assert.False(t, ok)
}
