package view

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// InvalidDate is shown when a reply timestamp is missing or unparseable.
const InvalidDate = "Invalid Date"

var printer = message.NewPrinter(language.AmericanEnglish)

// sentAtLayouts are tried in order when parsing a reply timestamp.
var sentAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// FormatSentAt renders raw in loc as "1/2/2006, 3:04:05 PM", or InvalidDate.
func FormatSentAt(raw string, loc *time.Location) string {
	if raw == "" {
		return InvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range sentAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc).Format("1/2/2006, 3:04:05 PM")
		}
	}
	return InvalidDate
}

// FormatAmount groups thousands the en-US way: 1000 -> "1,000".
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}
