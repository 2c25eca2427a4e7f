package kafka

import "time"

const EventBookingConfirmed = "booking_confirmed"

type ConfirmationEvent struct {
	Type               string    `json:"type"`
	SessionID          string    `json:"session_id"`
	ConfirmationNumber string    `json:"confirmation_number"`
	GuestName          string    `json:"guest_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	VillaID            string    `json:"villa_id"`
	CheckIn            time.Time `json:"check_in"`
	CheckOut           time.Time `json:"check_out"`
	Nights             int       `json:"nights"`
	AddOns             []string  `json:"add_ons"`
	Total              float64   `json:"total"`
	SpecialOccasions   []string  `json:"special_occasions,omitempty"`
	ArrivalTime        string    `json:"arrival_time,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
