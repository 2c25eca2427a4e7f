package domain

import (
	"math"
	"time"
)

type Step int

const (
	StepDates Step = iota + 1
	StepAccommodation
	StepAddOns
	StepGuestDetails
	StepReview
	StepConfirmation
)

const (
	FirstStep = StepDates
	LastStep  = StepConfirmation
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return BookingSteps[s-1].ShortTitle
}

type StepConfig struct {
	Number     Step   `json:"number"`
	Title      string `json:"title"`
	ShortTitle string `json:"shortTitle"`
}

var BookingSteps = []StepConfig{
	{Number: StepDates, Title: "Select Your Dates", ShortTitle: "Dates"},
	{Number: StepAccommodation, Title: "Your Villa", ShortTitle: "Villa"},
	{Number: StepAddOns, Title: "Enhance Your Stay", ShortTitle: "Extras"},
	{Number: StepGuestDetails, Title: "Guest Details", ShortTitle: "Details"},
	{Number: StepReview, Title: "Review & Pay", ShortTitle: "Review"},
	{Number: StepConfirmation, Title: "Confirmation", ShortTitle: "Confirmed"},
}

// BookingDates holds the stay endpoints. A nil endpoint has not been picked yet.
type BookingDates struct {
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
}

func (d BookingDates) Complete() bool {
	return d.CheckIn != nil && d.CheckOut != nil
}

// Nights is zero until both endpoints are set.
func (d BookingDates) Nights() int {
	if !d.Complete() {
		return 0
	}
	return CalculateNights(*d.CheckIn, *d.CheckOut)
}

// CalculateNights rounds the exact day difference up.
func CalculateNights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(float64(checkOut.Sub(checkIn)) / float64(24*time.Hour)))
}

type SelectedAddOn struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type GuestDetails struct {
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	Address             string   `json:"address,omitempty"`
	City                string   `json:"city,omitempty"`
	State               string   `json:"state,omitempty"`
	PostalCode          string   `json:"postalCode,omitempty"`
	Country             string   `json:"country"`
	ArrivalTime         string   `json:"arrivalTime,omitempty"`
	SpecialOccasions    []string `json:"specialOccasions"`
	DietaryRestrictions string   `json:"dietaryRestrictions,omitempty"`
	SpecialRequests     string   `json:"specialRequests,omitempty"`
}

func (g GuestDetails) HasOccasion(occasion string) bool {
	for _, o := range g.SpecialOccasions {
		if o == occasion {
			return true
		}
	}
	return false
}

// GuestDetailsPatch is a partial update; nil fields are left untouched.
type GuestDetailsPatch struct {
	FirstName           *string   `json:"firstName,omitempty"`
	LastName            *string   `json:"lastName,omitempty"`
	Email               *string   `json:"email,omitempty"`
	Phone               *string   `json:"phone,omitempty"`
	Address             *string   `json:"address,omitempty"`
	City                *string   `json:"city,omitempty"`
	State               *string   `json:"state,omitempty"`
	PostalCode          *string   `json:"postalCode,omitempty"`
	Country             *string   `json:"country,omitempty"`
	ArrivalTime         *string   `json:"arrivalTime,omitempty"`
	SpecialOccasions    *[]string `json:"specialOccasions,omitempty"`
	DietaryRestrictions *string   `json:"dietaryRestrictions,omitempty"`
	SpecialRequests     *string   `json:"specialRequests,omitempty"`
}

// Apply returns g with every non-nil field of p copied over.
func (p GuestDetailsPatch) Apply(g GuestDetails) GuestDetails {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&g.FirstName, p.FirstName)
	set(&g.LastName, p.LastName)
	set(&g.Email, p.Email)
	set(&g.Phone, p.Phone)
	set(&g.Address, p.Address)
	set(&g.City, p.City)
	set(&g.State, p.State)
	set(&g.PostalCode, p.PostalCode)
	set(&g.Country, p.Country)
	set(&g.ArrivalTime, p.ArrivalTime)
	set(&g.DietaryRestrictions, p.DietaryRestrictions)
	set(&g.SpecialRequests, p.SpecialRequests)
	if p.SpecialOccasions != nil {
		g.SpecialOccasions = append([]string{}, (*p.SpecialOccasions)...)
	}
	return g
}

type PricingBreakdown struct {
	NightlyRate        float64 `json:"nightlyRate"`
	NumberOfNights     int     `json:"numberOfNights"`
	AccommodationTotal float64 `json:"accommodationTotal"`
	AddOnsTotal        float64 `json:"addOnsTotal"`
	Subtotal           float64 `json:"subtotal"`
	TaxRate            float64 `json:"taxRate"`
	Taxes              float64 `json:"taxes"`
	ResortFee          float64 `json:"resortFee"`
	Total              float64 `json:"total"`
}

type Confirmation struct {
	ConfirmationNumber string    `json:"confirmationNumber"`
	CreatedAt          time.Time `json:"createdAt"`
}

// BookingState is the whole wizard session. It is only changed through the
// booking reducer.
type BookingState struct {
	CurrentStep    Step              `json:"currentStep"`
	Dates          BookingDates      `json:"dates"`
	Accommodation  *Villa            `json:"accommodation"`
	SelectedAddOns []SelectedAddOn   `json:"selectedAddOns"`
	GuestDetails   GuestDetails      `json:"guestDetails"`
	Pricing        *PricingBreakdown `json:"pricing"`
	Confirmation   *Confirmation     `json:"confirmation"`
	Errors         map[string]string `json:"errors"`
	IsLoading      bool              `json:"isLoading"`
}

func InitialState() BookingState {
	return BookingState{
		CurrentStep:    StepDates,
		SelectedAddOns: []SelectedAddOn{},
		GuestDetails: GuestDetails{
			Country:          "United States",
			SpecialOccasions: []string{},
		},
		Errors: map[string]string{},
	}
}

func (s BookingState) AddOnSelected(id string) bool {
	for _, a := range s.SelectedAddOns {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no mutable memory with s.
func (s BookingState) Clone() BookingState {
	c := s
	if s.Dates.CheckIn != nil {
		t := *s.Dates.CheckIn
		c.Dates.CheckIn = &t
	}
	if s.Dates.CheckOut != nil {
		t := *s.Dates.CheckOut
		c.Dates.CheckOut = &t
	}
	if s.Accommodation != nil {
		v := *s.Accommodation
		v.Features = append([]VillaFeature(nil), s.Accommodation.Features...)
		c.Accommodation = &v
	}
	c.SelectedAddOns = append([]SelectedAddOn{}, s.SelectedAddOns...)
	c.GuestDetails.SpecialOccasions = append([]string{}, s.GuestDetails.SpecialOccasions...)
	if s.Pricing != nil {
		p := *s.Pricing
		c.Pricing = &p
	}
	if s.Confirmation != nil {
		cf := *s.Confirmation
		c.Confirmation = &cf
	}
	c.Errors = make(map[string]string, len(s.Errors))
	for k, v := range s.Errors {
		c.Errors[k] = v
	}
	return c
}
