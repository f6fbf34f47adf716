package payment

import "time"

// DefaultRecords is the ledger a new tenant session starts with: two open
// periods followed by the paid history, most recent first.
func DefaultRecords() []*Record {
	paid := func(period string, due, paidOn time.Time, m Method, txID string) *Record {
		return &Record{
			Period:        period,
			AmountDue:     3_500_000,
			DueDate:       due,
			Status:        StatusPaid,
			PaidDate:      new(paidOn),
			Method:        m,
			TransactionID: txID,
		}
	}

	return []*Record{
		{Period: "Décembre 2024", AmountDue: 3_500_000, DueDate: Date(2024, time.December, 5), Status: StatusPending},
		{Period: "Janvier 2025", AmountDue: 3_500_000, DueDate: Date(2025, time.January, 5), Status: StatusPending},
		paid("Novembre 2024", Date(2024, time.November, 5), Date(2024, time.November, 3), MethodCard, "TX-1730678400000-CARTE"),
		paid("Octobre 2024", Date(2024, time.October, 5), Date(2024, time.October, 4), MethodOrangeMoney, "TX-1728086400000-ORANGE"),
		paid("Septembre 2024", Date(2024, time.September, 5), Date(2024, time.September, 2), MethodMTNMoney, "TX-1725408000000-MTN"),
		paid("Août 2024", Date(2024, time.August, 5), Date(2024, time.August, 1), MethodTransfer, "TX-1722470400000-VIREMENT"),
	}
}
