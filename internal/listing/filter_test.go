package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtati/kushtati-immo/internal/listing"
)

func TestPriceBand_Contains(t *testing.T) {
	type testCase struct {
		name  string
		band  listing.PriceBand
		price int64
		want  bool
	}

	tests := []testCase{
		{name: "AnyCheap", band: listing.PriceAny, price: 1, want: true},
		{name: "AnyExpensive", band: listing.PriceAny, price: 90_000_000_000, want: true},

		{name: "LowBelowEdge", band: listing.PriceLow, price: 4_999_999_999, want: true},
		{name: "LowAtEdge", band: listing.PriceLow, price: 5_000_000_000, want: true},
		{name: "LowAboveEdge", band: listing.PriceLow, price: 5_000_000_001, want: false},

		{name: "MediumBelowLowerEdge", band: listing.PriceMedium, price: 4_999_999_999, want: false},
		{name: "MediumAtLowerEdge", band: listing.PriceMedium, price: 5_000_000_000, want: true},
		{name: "MediumInside", band: listing.PriceMedium, price: 8_900_000_000, want: true},
		{name: "MediumAtUpperEdge", band: listing.PriceMedium, price: 15_000_000_000, want: true},
		{name: "MediumAboveUpperEdge", band: listing.PriceMedium, price: 15_000_000_001, want: false},

		{name: "HighBelowEdge", band: listing.PriceHigh, price: 14_999_999_999, want: false},
		{name: "HighAtEdge", band: listing.PriceHigh, price: 15_000_000_000, want: true},
		{name: "HighAboveEdge", band: listing.PriceHigh, price: 21_000_000_000, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.band.Contains(tt.price))
		})
	}
}

func titles(listings []*listing.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Title)
	}

	return out
}

func TestApply(t *testing.T) {
	type testCase struct {
		name   string
		filter listing.Filter
		want   []string
	}

	tests := []testCase{
		{
			name:   "NoFilter",
			filter: listing.Filter{},
			want: []string{
				"Villa Moderne Front de Mer",
				"Appartement Moderne Centre-Ville",
				"Résidence Familiale de Prestige",
				"Studio Minimaliste",
				"Villa de Luxe aux Collines",
				"Maison avec Jardin",
			},
		},
		{
			name:   "Rent",
			filter: listing.Filter{Type: listing.TypeRent},
			want:   []string{"Appartement Moderne Centre-Ville", "Studio Minimaliste"},
		},
		{
			name:   "LocationIgnoresCase",
			filter: listing.Filter{Location: "ratoma"},
			want:   []string{"Résidence Familiale de Prestige", "Maison avec Jardin"},
		},
		{
			name:   "MinBeds",
			filter: listing.Filter{MinBeds: 5},
			want:   []string{"Résidence Familiale de Prestige", "Villa de Luxe aux Collines"},
		},
		{
			name:   "LowBandIncludesRents",
			filter: listing.Filter{Price: listing.PriceLow},
			want:   []string{"Appartement Moderne Centre-Ville", "Studio Minimaliste"},
		},
		{
			name:   "MediumBand",
			filter: listing.Filter{Price: listing.PriceMedium},
			want:   []string{"Villa Moderne Front de Mer", "Résidence Familiale de Prestige", "Maison avec Jardin"},
		},
		{
			name:   "HighBand",
			filter: listing.Filter{Price: listing.PriceHigh},
			want:   []string{"Villa de Luxe aux Collines"},
		},
		{
			name:   "Combined",
			filter: listing.Filter{Type: listing.TypeSale, Location: "Conakry", MinBeds: 4, Price: listing.PriceMedium},
			want:   []string{"Villa Moderne Front de Mer"},
		},
		{
			name:   "NoMatch",
			filter: listing.Filter{Type: listing.TypeRent, Price: listing.PriceHigh},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(listing.Apply(listing.DefaultListings(), tt.filter)))
		})
	}
}

func TestParseType(t *testing.T) {
	got, err := listing.ParseType("Sale")
	require.NoError(t, err)
	assert.Equal(t, listing.TypeSale, got)

	got, err = listing.ParseType("all")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = listing.ParseType("lease")
	assert.ErrorIs(t, err, listing.ErrInvalid)
}

func TestParsePriceBand(t *testing.T) {
	got, err := listing.ParsePriceBand("HIGH")
	require.NoError(t, err)
	assert.Equal(t, listing.PriceHigh, got)

	_, err = listing.ParsePriceBand("cheap")
	assert.ErrorIs(t, err, listing.ErrInvalid)
}
