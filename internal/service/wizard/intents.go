package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/resortbooking/internal/calendar"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/validation"
)

type IntentType string

const (
	IntentSelectDay           IntentType = "select_day"
	IntentClearDates          IntentType = "clear_dates"
	IntentNextMonth           IntentType = "next_month"
	IntentPrevMonth           IntentType = "prev_month"
	IntentContinue            IntentType = "continue"
	IntentBack                IntentType = "back"
	IntentGoToStep            IntentType = "go_to_step"
	IntentSelectAccommodation IntentType = "select_accommodation"
	IntentToggleAddOn         IntentType = "toggle_addon"
	IntentSetAddOnQuantity    IntentType = "set_addon_quantity"
	IntentUpdateGuest         IntentType = "update_guest"
	IntentToggleOccasion      IntentType = "toggle_occasion"
	IntentSubmit              IntentType = "submit"
	IntentRestart             IntentType = "restart"
)

const dayLayout = "2006-01-02"

// Intent is one user action as sent by a renderer.
type Intent struct {
	Type            IntentType                `json:"type" binding:"required"`
	Day             string                    `json:"day,omitempty"`
	Step            int                       `json:"step,omitempty"`
	AccommodationID string                    `json:"accommodationId,omitempty"`
	AddOnID         string                    `json:"addOnId,omitempty"`
	Quantity        int                       `json:"quantity,omitempty"`
	Occasion        string                    `json:"occasion,omitempty"`
	Guest           *domain.GuestDetailsPatch `json:"guest,omitempty"`
}

// Apply routes in to the matching operation. Gating failures come back as
// errors; a step that is merely incomplete does not.
func (w *Wizard) Apply(ctx context.Context, in Intent) error {
	err := w.apply(in)
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
		w.logger.Debug("intent rejected", "intent", in.Type, "error", err)
	}
	w.metrics.ObserveIntent(string(in.Type), outcome)
	return err
}

func (w *Wizard) apply(in Intent) error {
	switch in.Type {
	case IntentSelectDay:
		day, err := time.ParseInLocation(dayLayout, in.Day, w.cfg.Location)
		if err != nil {
			return ErrInvalidDay
		}
		_, err = w.SelectDay(day)
		return err
	case IntentClearDates:
		return w.ClearDates()
	case IntentNextMonth:
		w.NextMonth()
		return nil
	case IntentPrevMonth:
		w.PrevMonth()
		return nil
	case IntentContinue:
		return w.Continue()
	case IntentBack:
		w.Back()
		return nil
	case IntentGoToStep:
		return w.GoToStep(domain.Step(in.Step))
	case IntentSelectAccommodation:
		return w.SelectAccommodation(in.AccommodationID)
	case IntentToggleAddOn:
		return w.ToggleAddOn(in.AddOnID)
	case IntentSetAddOnQuantity:
		return w.SetAddOnQuantity(in.AddOnID, in.Quantity)
	case IntentUpdateGuest:
		if in.Guest == nil {
			return ErrMissingGuestDetails
		}
		return w.UpdateGuest(*in.Guest)
	case IntentToggleOccasion:
		return w.ToggleOccasion(in.Occasion)
	case IntentSubmit:
		return w.Submit()
	case IntentRestart:
		w.Restart()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
	}
}

// SelectDay feeds a calendar click to the date selector and stores the
// resulting dates.
func (w *Wizard) SelectDay(day time.Time) (calendar.Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.machine.State()
	if state.Confirmation != nil {
		return calendar.OutcomeIgnored, ErrBookingClosed
	}

	dates, outcome := w.selector.Click(state.Dates, day)
	switch outcome {
	case calendar.OutcomeCheckIn, calendar.OutcomeCommitted:
		w.machine.SetDates(dates)
		w.machine.ClearError("dates")
	case calendar.OutcomeTooShort:
		w.machine.SetError("dates", fmt.Sprintf("Minimum stay is %d nights", w.cfg.Resort.MinNights))
	}
	return outcome, nil
}

func (w *Wizard) ClearDates() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed() {
		return ErrBookingClosed
	}
	w.machine.SetDates(w.selector.Clear())
	w.machine.ClearError("dates")
	return nil
}

func (w *Wizard) NextMonth() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selector.NextMonth()
}

func (w *Wizard) PrevMonth() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selector.PrevMonth()
}

// Continue advances past a valid step. On the review step it submits.
func (w *Wizard) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.machine.State()
	switch state.CurrentStep {
	case domain.StepReview:
		return w.submitLocked(state)
	case domain.StepConfirmation:
		return nil
	}

	if w.machine.Advance() {
		w.observeTransition(state.CurrentStep, w.machine.State().CurrentStep)
	}
	return nil
}

// Back is refused once the booking is confirmed.
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	from := w.machine.State().CurrentStep
	if from == domain.StepConfirmation || !w.machine.Retreat() {
		return false
	}
	w.observeTransition(from, w.machine.State().CurrentStep)
	return true
}

// GoToStep jumps to a step shown in the progress bar. The confirmation step
// is only reached by submitting.
func (w *Wizard) GoToStep(step domain.Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !step.Valid() || step == domain.StepConfirmation {
		return ErrStepNotReachable
	}
	state := w.machine.State()
	if state.Confirmation != nil {
		return ErrBookingClosed
	}
	if !validation.IsStepClickable(step, state, w.cfg.Resort) {
		return ErrStepNotReachable
	}
	w.machine.JumpTo(step)
	if step != state.CurrentStep {
		w.observeTransition(state.CurrentStep, step)
	}
	return nil
}

func (w *Wizard) SelectAccommodation(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed() {
		return ErrBookingClosed
	}
	for _, v := range w.villas {
		if v.ID == id {
			w.machine.SelectAccommodation(v)
			return nil
		}
	}
	return ErrUnknownAccommodation
}

func (w *Wizard) ToggleAddOn(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed() {
		return ErrBookingClosed
	}
	if _, ok := domain.FindAddOn(w.addOns, id); !ok {
		return ErrUnknownAddOn
	}
	w.machine.ToggleAddOn(id)
	return nil
}

// SetAddOnQuantity changes the quantity of a selected add-on; zero removes it.
func (w *Wizard) SetAddOnQuantity(id string, quantity int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed() {
		return ErrBookingClosed
	}
	if _, ok := domain.FindAddOn(w.addOns, id); !ok {
		return ErrUnknownAddOn
	}
	if quantity < 0 {
		return ErrInvalidAddOnQuantity
	}
	w.machine.SetAddOnQuantity(id, quantity)
	return nil
}

// UpdateGuest merges patch into the guest details without validating it.
func (w *Wizard) UpdateGuest(patch domain.GuestDetailsPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed() {
		return ErrBookingClosed
	}
	w.machine.UpdateGuestDetails(patch)
	return nil
}

func (w *Wizard) ToggleOccasion(occasion string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed() {
		return ErrBookingClosed
	}
	known := false
	for _, o := range domain.SpecialOccasions {
		if o == occasion {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownOccasion
	}

	current := w.machine.State().GuestDetails.SpecialOccasions
	updated := make([]string, 0, len(current)+1)
	for _, o := range current {
		if o != occasion {
			updated = append(updated, o)
		}
	}
	if len(updated) == len(current) {
		updated = append(updated, occasion)
	}
	w.machine.UpdateGuestDetails(domain.GuestDetailsPatch{SpecialOccasions: &updated})
	return nil
}

func (w *Wizard) Submit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitLocked(w.machine.State())
}

func (w *Wizard) submitLocked(state domain.BookingState) error {
	switch {
	case state.IsLoading:
		return ErrSubmissionInFlight
	case state.Confirmation != nil:
		return ErrBookingClosed
	case state.CurrentStep != domain.StepReview:
		return ErrNotReviewStep
	case !validation.IsStepValid(domain.StepReview, state, w.cfg.Resort):
		return ErrBookingIncomplete
	}

	if !w.machine.Submit() {
		return ErrBookingClosed
	}
	w.submittedAt = w.clock.Now()
	w.metrics.ObserveSubmission()
	w.logger.Info("booking submitted", "nights", state.Dates.Nights(), "add_ons", len(state.SelectedAddOns))
	return nil
}

// Restart abandons the booking and starts over as a fresh wizard.
func (w *Wizard) Restart() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.machine.Reset()
	w.selector.Reset()
	w.submittedAt = time.Time{}
	w.assignDefaultAccommodation()
}

func (w *Wizard) confirmed() bool {
	return w.machine.State().Confirmation != nil
}

func (w *Wizard) observeTransition(from, to domain.Step) {
	w.metrics.ObserveStepTransition(from.String(), to.String())
	w.logger.Debug("step changed", "from", int(from), "to", int(to))
}
