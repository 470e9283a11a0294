package analyzer

import (
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var polishMonthsGenitive = []string{
	"", "stycznia", "lutego", "marca", "kwietnia", "maja", "czerwca",
	"lipca", "sierpnia", "września", "października", "listopada", "grudnia",
}

var polishMonthsNominative = []string{
	"", "styczeń", "luty", "marzec", "kwiecień", "maj", "czerwiec",
	"lipiec", "sierpień", "wrzesień", "październik", "listopad", "grudzień",
}

var polishMonthsShort = []string{
	"", "sty", "lut", "mar", "kwi", "maj", "cze",
	"lip", "sie", "wrz", "paź", "lis", "gru",
}

// Monday first, matching the weekday histogram keys
var polishWeekdays = []string{
	"poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota", "niedziela",
}

// formatLongDate formats t as "5 marca 2024"
func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), polishMonthsGenitive[t.Month()], t.Year())
}

// formatShortDate formats t as "5 mar"
func formatShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), polishMonthsShort[t.Month()])
}

// formatMonthKey turns a "2006-01" key into "marzec 2024"
func formatMonthKey(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", polishMonthsNominative[t.Month()], t.Year())
}

// Comma grouping like "12,345"
var numberPrinter = message.NewPrinter(language.English)

// formatThousands renders n with comma thousand separators
func formatThousands(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// truncateRunes returns the first max runes of s
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// wholeDays returns the number of complete days in d
func wholeDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}
