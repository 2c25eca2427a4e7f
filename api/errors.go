package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/resortbooking/internal/service/catalog"
	"github.com/Domenick1991/resortbooking/internal/service/wizard"
	"github.com/Domenick1991/resortbooking/internal/session"
)

// statusFor maps service errors to HTTP status codes. Malformed input is a 400,
// a well-formed intent the booking cannot take right now is a 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, catalog.ErrAddOnNotFound):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrUnknownIntent),
		errors.Is(err, wizard.ErrInvalidDay),
		errors.Is(err, wizard.ErrUnknownAddOn),
		errors.Is(err, wizard.ErrUnknownAccommodation),
		errors.Is(err, wizard.ErrUnknownOccasion),
		errors.Is(err, wizard.ErrInvalidAddOnQuantity),
		errors.Is(err, wizard.ErrMissingGuestDetails):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrStepNotReachable),
		errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrNotReviewStep),
		errors.Is(err, wizard.ErrBookingIncomplete),
		errors.Is(err, wizard.ErrBookingClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
