package pricing

import (
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders whole US dollars, e.g. "$3,362".
func FormatCurrency(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// FormatDate renders e.g. "Thu, Oct 15, 2026".
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 2, 2006")
}

// FormatDateShort renders e.g. "Oct 15".
func FormatDateShort(t time.Time) string {
	return t.Format("Jan 2")
}

func NightsLabel(nights int) string {
	switch {
	case nights <= 0:
		return "Select dates"
	case nights == 1:
		return "1 night"
	default:
		return strconv.Itoa(nights) + " nights"
	}
}
