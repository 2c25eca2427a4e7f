package calendar

import (
	"time"

	"github.com/Domenick1991/resortbooking/internal/domain"
)

var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Title string     `json:"title"`
	// Cells starts with one blank cell per weekday before the 1st.
	Cells []DayCell `json:"cells"`
}

type DayCell struct {
	Blank    bool      `json:"blank"`
	Date     time.Time `json:"date"`
	Day      int       `json:"day,omitempty"`
	Past     bool      `json:"past,omitempty"`
	Today    bool      `json:"today,omitempty"`
	CheckIn  bool      `json:"checkIn,omitempty"`
	CheckOut bool      `json:"checkOut,omitempty"`
	InRange  bool      `json:"inRange,omitempty"`
}

func buildMonth(first, today time.Time, dates domain.BookingDates) Month {
	m := Month{
		Year:  first.Year(),
		Month: first.Month(),
		Title: first.Format("January 2006"),
	}
	for i := 0; i < int(first.Weekday()); i++ {
		m.Cells = append(m.Cells, DayCell{Blank: true})
	}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		m.Cells = append(m.Cells, DayCell{
			Date:     d,
			Day:      d.Day(),
			Past:     d.Before(today),
			Today:    sameDay(d, today),
			CheckIn:  dates.CheckIn != nil && sameDay(d, *dates.CheckIn),
			CheckOut: dates.CheckOut != nil && sameDay(d, *dates.CheckOut),
			InRange:  dates.Complete() && d.After(*dates.CheckIn) && d.Before(*dates.CheckOut),
		})
	}
	return m
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
