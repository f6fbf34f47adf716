// Package lease holds the tenant's rental agreement shown on dashboards and
// printed on receipts.
package lease

import "time"

type Lease struct {
	Property      string
	Location      string
	Address       string
	MonthlyRent   int64
	Deposit       int64
	Tenant        string
	Landlord      string
	LandlordPhone string
	LandlordEmail string
	Start         time.Time
	End           time.Time
}

// Active reports whether the contract covers t.
func (l Lease) Active(t time.Time) bool {
	return !t.Before(l.Start) && !t.After(l.End)
}

// RemainingMonths counts the whole months left on the contract at t.
func (l Lease) RemainingMonths(t time.Time) int {
	if t.After(l.End) {
		return 0
	}

	months := (l.End.Year()-t.Year())*12 + int(l.End.Month()-t.Month())
	if l.End.Day() < t.Day() {
		months--
	}

	return max(months, 0)
}

// Default is the lease of the demo tenant account.
func Default() Lease {
	return Lease{
		Property:      "Appartement 3 pièces - Kaloum",
		Location:      "Kaloum, Conakry",
		Address:       "Avenue de la République, Immeuble moderne, 3ème étage",
		MonthlyRent:   3_500_000,
		Deposit:       7_000_000,
		Tenant:        "Tenant - Kushtati Immo",
		Landlord:      "Ibrahim Sow",
		LandlordPhone: "+224 623 93 63 13",
		LandlordEmail: "ib362392@gmail.com",
		Start:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}
