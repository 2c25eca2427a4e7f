package booking

import "github.com/Domenick1991/resortbooking/internal/domain"

// Action is a single change request for Reduce.
type Action interface {
	isAction()
}

type SetDates struct{ Dates domain.BookingDates }
type SelectAccommodation struct{ Villa domain.Villa }
type ToggleAddOn struct{ ID string }
type SetAddOnQuantity struct {
	ID       string
	Quantity int
}
type UpdateGuestDetails struct{ Patch domain.GuestDetailsPatch }
type SetPricing struct{ Pricing domain.PricingBreakdown }
type NextStep struct{}
type PrevStep struct{}
type GoToStep struct{ Step domain.Step }
type SetError struct{ Field, Message string }
type ClearError struct{ Field string }
type ClearAllErrors struct{}
type SetLoading struct{ Loading bool }
type SetConfirmation struct{ Confirmation domain.Confirmation }
type Reset struct{}

func (SetDates) isAction()            {}
func (SelectAccommodation) isAction() {}
func (ToggleAddOn) isAction()         {}
func (SetAddOnQuantity) isAction()    {}
func (UpdateGuestDetails) isAction()  {}
func (SetPricing) isAction()          {}
func (NextStep) isAction()            {}
func (PrevStep) isAction()            {}
func (GoToStep) isAction()            {}
func (SetError) isAction()            {}
func (ClearError) isAction()          {}
func (ClearAllErrors) isAction()      {}
func (SetLoading) isAction()          {}
func (SetConfirmation) isAction()     {}
func (Reset) isAction()               {}

// Reduce returns the state that follows action. state is never modified.
func Reduce(state domain.BookingState, action Action) domain.BookingState {
	next := state.Clone()

	switch a := action.(type) {
	case SetDates:
		next.Dates = domain.BookingState{Dates: a.Dates}.Clone().Dates
	case SelectAccommodation:
		next.Accommodation = domain.BookingState{Accommodation: &a.Villa}.Clone().Accommodation
	case ToggleAddOn:
		if next.AddOnSelected(a.ID) {
			next.SelectedAddOns = removeAddOn(next.SelectedAddOns, a.ID)
		} else {
			next.SelectedAddOns = append(next.SelectedAddOns, domain.SelectedAddOn{ID: a.ID, Quantity: 1})
		}
	case SetAddOnQuantity:
		if a.Quantity < 1 {
			next.SelectedAddOns = removeAddOn(next.SelectedAddOns, a.ID)
			break
		}
		for i := range next.SelectedAddOns {
			if next.SelectedAddOns[i].ID == a.ID {
				next.SelectedAddOns[i].Quantity = a.Quantity
			}
		}
	case UpdateGuestDetails:
		next.GuestDetails = a.Patch.Apply(next.GuestDetails)
	case SetPricing:
		p := a.Pricing
		next.Pricing = &p
	case NextStep:
		next.CurrentStep = min(next.CurrentStep+1, domain.LastStep)
	case PrevStep:
		next.CurrentStep = max(next.CurrentStep-1, domain.FirstStep)
	case GoToStep:
		if a.Step.Valid() {
			next.CurrentStep = a.Step
		}
	case SetError:
		next.Errors[a.Field] = a.Message
	case ClearError:
		delete(next.Errors, a.Field)
	case ClearAllErrors:
		next.Errors = map[string]string{}
	case SetLoading:
		next.IsLoading = a.Loading
	case SetConfirmation:
		// A confirmation is final for the session.
		if next.Confirmation == nil {
			c := a.Confirmation
			next.Confirmation = &c
		}
	case Reset:
		return domain.InitialState()
	}

	return next
}

func removeAddOn(selected []domain.SelectedAddOn, id string) []domain.SelectedAddOn {
	out := make([]domain.SelectedAddOn, 0, len(selected))
	for _, s := range selected {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
