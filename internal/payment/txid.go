package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var transactionIDPattern = regexp.MustCompile(`^TX-(\d+)-([A-Z]+)$`)

// ValidTransactionID reports whether id has the TX-<millis>-<CODE> shape and
// names a known method.
func ValidTransactionID(id string) bool {
	_, m, ok := ParseTransactionID(id)
	return ok && m.Valid()
}

// ParseTransactionID splits a transaction id into its timestamp and method.
func ParseTransactionID(id string) (time.Time, Method, bool) {
	parts := transactionIDPattern.FindStringSubmatch(id)
	if parts == nil {
		return time.Time{}, "", false
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, "", false
	}

	return time.UnixMilli(millis).UTC(), Method(strings.ToLower(parts[2])), true
}
