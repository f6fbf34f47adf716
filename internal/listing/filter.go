package listing

import (
	"fmt"
	"strings"
)

// Band edges in GNF. Both edges belong to both adjacent bands.
const (
	LowBandMax  int64 = 5_000_000_000
	HighBandMin int64 = 15_000_000_000
)

// PriceBand is a coarse price range used by the search form.
type PriceBand string

const (
	PriceAny    PriceBand = ""
	PriceLow    PriceBand = "low"
	PriceMedium PriceBand = "medium"
	PriceHigh   PriceBand = "high"
)

func ParsePriceBand(s string) (PriceBand, error) {
	switch b := PriceBand(strings.ToLower(strings.TrimSpace(s))); b {
	case "", "all":
		return PriceAny, nil
	case PriceLow, PriceMedium, PriceHigh:
		return b, nil
	}

	return "", fmt.Errorf("%w: unknown price band %q", ErrInvalid, s)
}

// Contains reports whether price falls in the band.
func (b PriceBand) Contains(price int64) bool {
	switch b {
	case PriceLow:
		return price <= LowBandMax
	case PriceMedium:
		return price >= LowBandMax && price <= HighBandMin
	case PriceHigh:
		return price >= HighBandMin
	}

	return true
}

// Filter narrows the catalogue. Zero fields do not constrain.
type Filter struct {
	Type     Type
	Location string
	MinBeds  int
	Price    PriceBand
}

// Match reports whether l passes every set criterion. Location is a
// case-insensitive substring match.
func (f Filter) Match(l *Listing) bool {
	if f.Type != "" && l.Type != f.Type {
		return false
	}

	if f.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
		return false
	}

	if l.Beds < f.MinBeds {
		return false
	}

	return f.Price.Contains(l.Price)
}

// Apply returns the listings matching f, in their original order.
func Apply(listings []*Listing, f Filter) []*Listing {
	out := make([]*Listing, 0, len(listings))

	for _, l := range listings {
		if f.Match(l) {
			out = append(out, l)
		}
	}

	return out
}
