package ledgercsv

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errFractional = errors.New("amount has a fractional part")

// parseAmount parses a whole franc amount written with any grouping.
// Format examples: "3 500 000 GNF" -> 3500000, "3.500.000" -> 3500000, "3500000,00" -> 3500000.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "GNF"))
	clean = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ".", "").Replace(clean)
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, errFractional
	}

	return d.IntPart(), nil
}
