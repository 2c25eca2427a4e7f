package calendar

import (
	"time"

	"github.com/Domenick1991/resortbooking/internal/clock"
	"github.com/Domenick1991/resortbooking/internal/domain"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeAwaitingCheckOut
)

// Outcome describes what a day click did.
type Outcome int

const (
	// OutcomeIgnored: the day was in the past.
	OutcomeIgnored Outcome = iota
	OutcomeCheckIn
	OutcomeCommitted
	// OutcomeTooShort: check-out was before the minimum stay; nothing changed.
	OutcomeTooShort
)

// Selector drives two-click stay selection over a two-month calendar. It does
// not own the dates: callers pass the current dates in and store what comes
// back.
type Selector struct {
	clock     clock.Clock
	loc       *time.Location
	minNights int
	mode      Mode
	month     time.Time // first day of the left-hand month
}

func NewSelector(c clock.Clock, loc *time.Location, minNights int) *Selector {
	if loc == nil {
		loc = time.Local
	}
	s := &Selector{clock: c, loc: loc, minNights: minNights}
	s.month = firstOfMonth(s.Today())
	return s
}

func (s *Selector) Today() time.Time {
	return clock.StartOfDay(s.clock.Now(), s.loc)
}

func (s *Selector) Mode() Mode {
	return s.mode
}

func (s *Selector) AwaitingCheckOut() bool {
	return s.mode == ModeAwaitingCheckOut
}

// Prompt is the instruction shown above the calendar.
func (s *Selector) Prompt() string {
	if s.AwaitingCheckOut() {
		return "Select check-out date"
	}
	return "Select check-in date"
}

// Click applies a click on day to current and returns the resulting dates.
// Only the calendar date of day is used, whatever zone it carries.
func (s *Selector) Click(current domain.BookingDates, day time.Time) (domain.BookingDates, Outcome) {
	day = clock.DateIn(day, s.loc)
	if day.Before(s.Today()) {
		return current, OutcomeIgnored
	}

	if s.mode == ModeAwaitingCheckOut && current.CheckIn != nil && day.After(*current.CheckIn) {
		if domain.CalculateNights(*current.CheckIn, day) < s.minNights {
			return current, OutcomeTooShort
		}
		checkIn := *current.CheckIn
		s.mode = ModeIdle
		return domain.BookingDates{CheckIn: &checkIn, CheckOut: &day}, OutcomeCommitted
	}

	s.mode = ModeAwaitingCheckOut
	return domain.BookingDates{CheckIn: &day}, OutcomeCheckIn
}

func (s *Selector) Clear() domain.BookingDates {
	s.mode = ModeIdle
	return domain.BookingDates{}
}

// Reset also returns the view to the current month.
func (s *Selector) Reset() {
	s.mode = ModeIdle
	s.month = firstOfMonth(s.Today())
}

// Sync puts the selector back in idle mode after dates were set elsewhere,
// e.g. when a session is restored.
func (s *Selector) Sync(dates domain.BookingDates) {
	if dates.CheckIn != nil && dates.CheckOut == nil {
		s.mode = ModeAwaitingCheckOut
		return
	}
	s.mode = ModeIdle
}

func (s *Selector) DisplayedMonth() time.Time {
	return s.month
}

func (s *Selector) CanGoBack() bool {
	return s.month.After(firstOfMonth(s.Today()))
}

// PrevMonth refuses to move into months before today's.
func (s *Selector) PrevMonth() bool {
	if !s.CanGoBack() {
		return false
	}
	s.month = s.month.AddDate(0, -1, 0)
	return true
}

func (s *Selector) NextMonth() {
	s.month = s.month.AddDate(0, 1, 0)
}

// Months renders the displayed month and the one after it.
func (s *Selector) Months(dates domain.BookingDates) [2]Month {
	today := s.Today()
	return [2]Month{
		buildMonth(s.month, today, dates),
		buildMonth(s.month.AddDate(0, 1, 0), today, dates),
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
