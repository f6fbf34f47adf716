package portfolio

import "time"

// DefaultProperties is the demo owner portfolio.
func DefaultProperties() []Property {
	date := func(y int, m time.Month, d int) *time.Time {
		return new(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}

	return []Property{
		{
			ID:          "1",
			Title:       "Villa Moderne Kaloum",
			Location:    "Kaloum, Conakry",
			Rent:        5_000_000,
			Status:      StatusRented,
			Tenant:      "Mamadou Diallo",
			LastPayment: date(2025, time.November, 1),
		},
		{
			ID:           "2",
			Title:        "Appartement Matam",
			Location:     "Matam, Conakry",
			Rent:         3_500_000,
			Status:       StatusRented,
			Tenant:       "Aissatou Bah",
			LastPayment:  date(2025, time.September, 15),
			UnpaidMonths: 2,
			ContractEnd:  date(2026, time.August, 15),
		},
		{
			ID:       "3",
			Title:    "Bureau Centre-Ville",
			Location: "Almamya, Kaloum",
			Rent:     4_000_000,
			Status:   StatusAvailable,
		},
		{
			ID:          "4",
			Title:       "Villa Kipé",
			Location:    "Kipé, Ratoma",
			Rent:        6_500_000,
			Status:      StatusRented,
			Tenant:      "Ibrahima Sylla",
			LastPayment: date(2025, time.November, 5),
			ContractEnd: date(2026, time.December, 31),
		},
	}
}
