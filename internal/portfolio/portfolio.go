// Package portfolio computes the owner-side figures: occupancy, rental revenue,
// arrears, the monthly activity report and the yearly tax declaration.
package portfolio

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kushtati/kushtati-immo/internal/maintenance"
)

type Status string

const (
	StatusAvailable Status = "disponible"
	StatusRented    Status = "loue"
	StatusSold      Status = "vendu"
)

type Property struct {
	ID           string
	Title        string
	Location     string
	Rent         int64
	Status       Status
	Tenant       string
	LastPayment  *time.Time
	UnpaidMonths int
	ContractEnd  *time.Time
}

func (p Property) Rented() bool {
	return p.Status == StatusRented
}

// Arrears is the rent owed on unpaid months.
func (p Property) Arrears() int64 {
	if p.UnpaidMonths <= 0 {
		return 0
	}

	return p.Rent * int64(p.UnpaidMonths)
}

type Stats struct {
	Total          int
	Rented         int
	Available      int
	MonthlyRevenue int64
	UnpaidAmount   int64
	OccupancyRate  decimal.Decimal // percent, one decimal
	CollectionRate decimal.Decimal // percent of monthly revenue not in arrears, one decimal
}

func ComputeStats(properties []Property) Stats {
	var s Stats

	s.Total = len(properties)

	for _, p := range properties {
		switch p.Status {
		case StatusRented:
			s.Rented++
			s.MonthlyRevenue += p.Rent
		case StatusAvailable:
			s.Available++
		}

		s.UnpaidAmount += p.Arrears()
	}

	s.OccupancyRate = percent(int64(s.Rented), int64(s.Total))
	s.CollectionRate = percent(s.MonthlyRevenue-s.UnpaidAmount, s.MonthlyRevenue)

	return s
}

func percent(part, whole int64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).
		Round(1)
}

type MonthlyReport struct {
	Month         time.Time
	Reference     string
	Stats         Stats
	AnnualRevenue int64
	Expenses      int64
	NetProfit     int64
	Properties    []Property
}

// BuildMonthlyReport projects the current monthly revenue over a year and
// subtracts the maintenance spend.
func BuildMonthlyReport(properties []Property, works []*maintenance.Request, now time.Time) MonthlyReport {
	stats := ComputeStats(properties)
	expenses := maintenance.Total(works)
	annual := stats.MonthlyRevenue * 12

	return MonthlyReport{
		Month:         time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		Reference:     now.Format("RM-200601"),
		Stats:         stats,
		AnnualRevenue: annual,
		Expenses:      expenses,
		NetProfit:     annual - expenses,
		Properties:    properties,
	}
}

type RevenueLine struct {
	Property      string
	Location      string
	MonthlyRent   int64
	AnnualRevenue int64
}

type TaxDeclaration struct {
	Year          int
	Reference     string
	Revenue       []RevenueLine
	AnnualRevenue int64
	Expenses      []*maintenance.Request
	TotalExpenses int64
	TaxableIncome int64
}

// BuildTaxDeclaration lists rental income per property and deductible works.
// Properties that are not rented contribute zero.
func BuildTaxDeclaration(properties []Property, works []*maintenance.Request, year int) TaxDeclaration {
	d := TaxDeclaration{
		Year:      year,
		Reference: "DF-" + strconv.Itoa(year),
		Expenses:  works,
	}

	for _, p := range properties {
		var monthly int64
		if p.Rented() {
			monthly = p.Rent
		}

		d.Revenue = append(d.Revenue, RevenueLine{
			Property:      p.Title,
			Location:      p.Location,
			MonthlyRent:   monthly,
			AnnualRevenue: monthly * 12,
		})
		d.AnnualRevenue += monthly * 12
	}

	d.TotalExpenses = maintenance.Total(works)
	d.TaxableIncome = d.AnnualRevenue - d.TotalExpenses

	return d
}
