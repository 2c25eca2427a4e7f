package validation

import "github.com/Domenick1991/resortbooking/internal/domain"

// IsStepValid reports whether step has what it needs for the wizard to move
// past it. Steps without requirements are always valid.
func IsStepValid(step domain.Step, state domain.BookingState, cfg domain.ResortConfig) bool {
	switch step {
	case domain.StepDates:
		return state.Dates.Complete() && state.Dates.Nights() >= cfg.MinNights
	case domain.StepAccommodation:
		return state.Accommodation != nil
	case domain.StepAddOns:
		return true
	case domain.StepGuestDetails:
		g := state.GuestDetails
		return g.FirstName != "" && g.LastName != "" && g.Email != "" && g.Phone != ""
	case domain.StepReview:
		return IsStepValid(domain.StepDates, state, cfg) &&
			IsStepValid(domain.StepAccommodation, state, cfg) &&
			IsStepValid(domain.StepGuestDetails, state, cfg)
	default:
		return true
	}
}

// IsStepClickable reports whether a progress indicator may jump to step:
// completed steps always, the current step when the one before it is valid,
// never a step ahead of the current one.
func IsStepClickable(step domain.Step, state domain.BookingState, cfg domain.ResortConfig) bool {
	if state.CurrentStep > step {
		return true
	}
	return step <= state.CurrentStep && IsStepValid(step-1, state, cfg)
}
