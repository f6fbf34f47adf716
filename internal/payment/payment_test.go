package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kushtati/kushtati-immo/internal/payment"
)

func TestDerive(t *testing.T) {
	december := &payment.Record{
		Period:    "Dec 2024",
		AmountDue: 3_500_000,
		DueDate:   payment.Date(2024, time.December, 5),
		Status:    payment.StatusPending,
	}

	paidOn := payment.Date(2024, time.December, 3)
	paid := &payment.Record{
		Period:        "Dec 2024",
		AmountDue:     3_500_000,
		DueDate:       payment.Date(2024, time.December, 5),
		Status:        payment.StatusPaid,
		PaidDate:      &paidOn,
		Method:        payment.MethodCard,
		TransactionID: "TX-1733184000000-CARTE",
	}

	type testCase struct {
		name   string
		record *payment.Record
		now    time.Time
		want   payment.DisplayState
	}

	tests := []testCase{
		{
			name:   "Overdue after the deadline",
			record: december,
			now:    time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC),
			want:   payment.StateOverdue,
		},
		{
			name:   "Advance before the deadline",
			record: december,
			now:    time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC),
			want:   payment.StateAdvancePayment,
		},
		{
			name:   "Due today is pending",
			record: december,
			now:    time.Date(2024, 12, 5, 23, 59, 0, 0, time.UTC),
			want:   payment.StatePending,
		},
		{
			name:   "Due today in another zone is pending",
			record: december,
			now:    time.Date(2024, 12, 5, 1, 0, 0, 0, time.FixedZone("GMT+1", 3600)),
			want:   payment.StatePending,
		},
		{
			name:   "Paid wins over an old deadline",
			record: paid,
			now:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			want:   payment.StatePaid,
		},
		{
			name:   "Paid wins over a future deadline",
			record: paid,
			now:    time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			want:   payment.StatePaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, payment.Derive(tt.record, tt.now))
		})
	}
}

func TestDerive_TotalAndExclusive(t *testing.T) {
	due := payment.Date(2024, time.December, 5)
	start := payment.Date(2024, time.November, 20)

	for _, status := range []payment.Status{payment.StatusPending, payment.StatusPaid} {
		r := &payment.Record{DueDate: due, Status: status}

		for day := 0; day < 30; day++ {
			now := start.AddDate(0, 0, day).Add(13 * time.Hour)
			got := payment.Derive(r, now)

			matches := 0

			for _, s := range []payment.DisplayState{
				payment.StatePaid,
				payment.StatePending,
				payment.StateOverdue,
				payment.StateAdvancePayment,
			} {
				if got == s {
					matches++
				}
			}

			assert.Equal(t, 1, matches, "status %s at %s", status, now)

			if status == payment.StatusPaid {
				assert.Equal(t, payment.StatePaid, got)
			} else {
				assert.NotEqual(t, payment.StatePaid, got)
			}
		}
	}
}

func TestDisplayState_Label(t *testing.T) {
	assert.Equal(t, "En retard", payment.StateOverdue.Label())
	assert.Equal(t, "Payé", payment.StatePaid.Label())
	assert.Equal(t, "Inconnu", payment.DisplayState("bogus").Label())
}

func TestParseMethod(t *testing.T) {
	m, err := payment.ParseMethod(" Carte ")
	assert.NoError(t, err)
	assert.Equal(t, payment.MethodCard, m)
	assert.Equal(t, "CARTE", m.Code())
	assert.Equal(t, "Carte bancaire", m.Label())

	_, err = payment.ParseMethod("bitcoin")
	assert.ErrorIs(t, err, payment.ErrUnknownMethod)
}

func TestMethods_AllLabelled(t *testing.T) {
	seen := make(map[string]bool)

	for _, m := range payment.Methods {
		assert.True(t, m.Valid())
		assert.NotEmpty(t, m.Label())
		assert.False(t, seen[m.Code()], "duplicate code %s", m.Code())
		seen[m.Code()] = true

		back, ok := payment.MethodFromLabel(m.Label())
		assert.True(t, ok)
		assert.Equal(t, m, back)
	}

	assert.Len(t, seen, 6)
}

func TestParseTransactionID(t *testing.T) {
	at, m, ok := payment.ParseTransactionID("TX-1730678400000-CARTE")
	assert.True(t, ok)
	assert.Equal(t, payment.MethodCard, m)
	assert.Equal(t, int64(1730678400000), at.UnixMilli())

	assert.True(t, payment.ValidTransactionID("TX-1-ESPECES"))
	assert.False(t, payment.ValidTransactionID("TX-abc-CARTE"))
	assert.False(t, payment.ValidTransactionID("TX-1-BITCOIN"))
	assert.False(t, payment.ValidTransactionID("CB-1730678400000"))
}

func TestDefaultRecords_Valid(t *testing.T) {
	records := payment.DefaultRecords()
	assert.Len(t, records, 6)

	for _, r := range records {
		assert.NoError(t, payment.Validate(r), r.Period)
	}
}

func TestRecord_Clone(t *testing.T) {
	paidOn := payment.Date(2024, time.November, 3)
	r := &payment.Record{Status: payment.StatusPaid, PaidDate: &paidOn}

	c := r.Clone()
	*c.PaidDate = payment.Date(2030, time.January, 1)

	assert.Equal(t, payment.Date(2024, time.November, 3), *r.PaidDate)
}
