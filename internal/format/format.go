// Package format renders amounts and dates the way tenants see them on the
// dashboard and on generated documents.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/divan/num2words"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currency = "GNF"

var printer = message.NewPrinter(language.French)

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Amount renders n francs with French digit grouping, e.g. "3 500 000 GNF".
// Group separators are non-breaking spaces.
func Amount(n int64) string {
	return printer.Sprintf("%d", n) + "\u00a0" + currency
}

// Date renders a calendar date as DD/MM/YYYY.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// MonthYear renders "décembre 2024".
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

// Period renders a billing period label, capitalised: "Décembre 2024".
func Period(t time.Time) string {
	s := MonthYear(t)

	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// AmountInWords spells the amount for receipts.
func AmountInWords(n int64) string {
	return fmt.Sprintf("%s francs guinéens", num2words.Convert(int(n)))
}

// Plain replaces the non-breaking spaces used by Amount with regular spaces.
// Core PDF fonts and CSV consumers do not handle them.
func Plain(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}
