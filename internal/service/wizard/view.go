package wizard

import (
	"github.com/Domenick1991/resortbooking/internal/calendar"
	"github.com/Domenick1991/resortbooking/internal/domain"
	"github.com/Domenick1991/resortbooking/internal/pricing"
	"github.com/Domenick1991/resortbooking/internal/validation"
)

const (
	labelContinue   = "Continue"
	labelComplete   = "Complete"
	labelProcessing = "Processing..."
)

// View is everything a renderer needs to draw the wizard.
type View struct {
	SessionID     string              `json:"sessionId"`
	Step          domain.Step         `json:"step"`
	Title         string              `json:"title"`
	ShortTitle    string              `json:"shortTitle"`
	Progress      []StepIndicator     `json:"progress"`
	CanContinue   bool                `json:"canContinue"`
	CanGoBack     bool                `json:"canGoBack"`
	ContinueLabel string              `json:"continueLabel"`
	Calendar      *CalendarView       `json:"calendar,omitempty"`
	Summary       *Summary            `json:"summary,omitempty"`
	Confirmation  *ConfirmationView   `json:"confirmation,omitempty"`
	ReturnURL     string              `json:"returnUrl"`
	Resort        domain.ResortConfig `json:"resort"`
	State         domain.BookingState `json:"state"`
}

type StepIndicator struct {
	Step       domain.Step `json:"step"`
	Title      string      `json:"title"`
	ShortTitle string      `json:"shortTitle"`
	Active     bool        `json:"active"`
	Completed  bool        `json:"completed"`
	Clickable  bool        `json:"clickable"`
}

type CalendarView struct {
	Prompt        string            `json:"prompt"`
	Weekdays      []string          `json:"weekdays"`
	Months        [2]calendar.Month `json:"months"`
	CanGoBack     bool              `json:"canGoBack"`
	Nights        int               `json:"nights"`
	NightsLabel   string            `json:"nightsLabel,omitempty"`
	CheckInLabel  string            `json:"checkInLabel,omitempty"`
	CheckOutLabel string            `json:"checkOutLabel,omitempty"`
	MinNights     int               `json:"minNights"`
	Error         string            `json:"error,omitempty"`
}

// Summary is the running cost shown from step 2 on.
type Summary struct {
	Accommodation string                   `json:"accommodation,omitempty"`
	CheckIn       string                   `json:"checkIn,omitempty"`
	CheckOut      string                   `json:"checkOut,omitempty"`
	Nights        int                      `json:"nights"`
	NightsLabel   string                   `json:"nightsLabel"`
	AddOns        []SummaryLine            `json:"addOns,omitempty"`
	Pricing       *domain.PricingBreakdown `json:"pricing,omitempty"`
	Total         string                   `json:"total,omitempty"`
}

type SummaryLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
}

type ConfirmationView struct {
	ConfirmationNumber string                  `json:"confirmationNumber"`
	GuestName          string                  `json:"guestName"`
	Email              string                  `json:"email"`
	CheckIn            string                  `json:"checkIn"`
	CheckOut           string                  `json:"checkOut"`
	CheckInTime        string                  `json:"checkInTime"`
	CheckOutTime       string                  `json:"checkOutTime"`
	Nights             int                     `json:"nights"`
	Pricing            domain.PricingBreakdown `json:"pricing"`
	Total              string                  `json:"total"`
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.machine.State()
	resort := w.cfg.Resort
	step := state.CurrentStep
	stepCfg := domain.BookingSteps[step-1]

	v := View{
		SessionID:  w.id,
		Step:       step,
		Title:      stepCfg.Title,
		ShortTitle: stepCfg.ShortTitle,
		CanGoBack:  step > domain.FirstStep && step < domain.StepConfirmation,
		ReturnURL:  w.cfg.ReturnURL,
		Resort:     resort,
		State:      state,
	}

	for _, sc := range domain.BookingSteps[:domain.StepReview] {
		v.Progress = append(v.Progress, StepIndicator{
			Step:       sc.Number,
			Title:      sc.Title,
			ShortTitle: sc.ShortTitle,
			Active:     sc.Number == step,
			Completed:  sc.Number < step,
			Clickable:  validation.IsStepClickable(sc.Number, state, resort),
		})
	}

	if step != domain.StepConfirmation {
		v.CanContinue = validation.IsStepValid(step, state, resort) && !state.IsLoading
		switch {
		case state.IsLoading:
			v.ContinueLabel = labelProcessing
		case step == domain.StepReview:
			v.ContinueLabel = labelComplete
		default:
			v.ContinueLabel = labelContinue
		}
	}

	if step == domain.StepDates {
		v.Calendar = w.calendarView(state)
	} else {
		v.Summary = w.summary(state)
	}
	if step == domain.StepConfirmation {
		v.Confirmation = confirmationView(state, resort)
	}
	return v
}

func (w *Wizard) calendarView(state domain.BookingState) *CalendarView {
	nights := state.Dates.Nights()
	cv := &CalendarView{
		Prompt:    w.selector.Prompt(),
		Weekdays:  calendar.Weekdays,
		Months:    w.selector.Months(state.Dates),
		CanGoBack: w.selector.CanGoBack(),
		Nights:    nights,
		MinNights: w.cfg.Resort.MinNights,
		Error:     state.Errors["dates"],
	}
	if nights > 0 {
		cv.NightsLabel = pricing.NightsLabel(nights)
	}
	if state.Dates.CheckIn != nil {
		cv.CheckInLabel = pricing.FormatDateShort(*state.Dates.CheckIn)
	}
	if state.Dates.CheckOut != nil {
		cv.CheckOutLabel = pricing.FormatDateShort(*state.Dates.CheckOut)
	}
	return cv
}

func (w *Wizard) summary(state domain.BookingState) *Summary {
	nights := state.Dates.Nights()
	s := &Summary{
		Nights:      nights,
		NightsLabel: pricing.NightsLabel(nights),
	}
	if state.Accommodation != nil {
		s.Accommodation = state.Accommodation.Name
	}
	if state.Dates.CheckIn != nil {
		s.CheckIn = pricing.FormatDate(*state.Dates.CheckIn)
	}
	if state.Dates.CheckOut != nil {
		s.CheckOut = pricing.FormatDate(*state.Dates.CheckOut)
	}
	for _, sel := range state.SelectedAddOns {
		a, ok := domain.FindAddOn(w.addOns, sel.ID)
		if !ok {
			continue
		}
		s.AddOns = append(s.AddOns, SummaryLine{
			ID:       a.ID,
			Name:     a.Name,
			Quantity: sel.Quantity,
			Amount:   pricing.FormatCurrency(a.Price * float64(sel.Quantity)),
		})
	}
	if p, ok := pricing.ForState(state, w.addOns, w.cfg.Resort); ok {
		s.Pricing = &p
		s.Total = pricing.FormatCurrency(p.Total)
	}
	return s
}

func confirmationView(state domain.BookingState, resort domain.ResortConfig) *ConfirmationView {
	if state.Confirmation == nil {
		return nil
	}
	g := state.GuestDetails
	cv := &ConfirmationView{
		ConfirmationNumber: state.Confirmation.ConfirmationNumber,
		GuestName:          g.FirstName + " " + g.LastName,
		Email:              g.Email,
		CheckInTime:        resort.CheckInTime,
		CheckOutTime:       resort.CheckOutTime,
		Nights:             state.Dates.Nights(),
	}
	if state.Dates.CheckIn != nil {
		cv.CheckIn = pricing.FormatDate(*state.Dates.CheckIn)
	}
	if state.Dates.CheckOut != nil {
		cv.CheckOut = pricing.FormatDate(*state.Dates.CheckOut)
	}
	if state.Pricing != nil {
		cv.Pricing = *state.Pricing
		cv.Total = pricing.FormatCurrency(state.Pricing.Total)
	}
	return cv
}
