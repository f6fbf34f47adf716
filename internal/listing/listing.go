// Package listing holds the public catalogue of properties for sale or rent.
package listing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("listing not found")
	ErrInvalid  = errors.New("invalid listing")
)

// Type is whether a listing is offered for sale or for rent.
type Type string

const (
	TypeSale Type = "sale"
	TypeRent Type = "rent"
)

func (t Type) Valid() bool {
	return t == TypeSale || t == TypeRent
}

func (t Type) Label() string {
	switch t {
	case TypeSale:
		return "À vendre"
	case TypeRent:
		return "À louer"
	}

	return string(t)
}

// ParseType accepts "sale" and "rent" in any case. An empty string or "all"
// means no type constraint.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "", "all":
		return "", nil
	case TypeSale, TypeRent:
		return t, nil
	}

	return "", fmt.Errorf("%w: unknown type %q", ErrInvalid, s)
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusRented    Status = "rented"
	StatusSold      Status = "sold"
)

// Kind is the kind of building on offer.
type Kind string

const (
	KindVilla     Kind = "villa"
	KindApartment Kind = "appartement"
	KindLand      Kind = "terrain"
	KindOffice    Kind = "bureau"
	KindShop      Kind = "commerce"
)

// Listing is one property shown on the public site.
type Listing struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       int64 // GNF; monthly rent for TypeRent
	Location    string
	Beds        int
	Baths       int
	Area        int // sqft
	Kind        Kind
	Type        Type
	Status      Status
	ImageURL    string
	Featured    bool
	Owner       string
}
