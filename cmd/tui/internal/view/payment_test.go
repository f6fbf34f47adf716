package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
	"github.com/kushtati/kushtati-immo/internal/payment/store"
)

func newPaymentDialog(t *testing.T) (PaymentModel, *flow.Flow) {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, 12, 10, 14, 30, 0, 0, time.UTC) }
	ledger := payment.NewService(store.NewMemory(), clock)

	rec := &payment.Record{
		Period:    "Décembre 2024",
		AmountDue: 3_500_000,
		DueDate:   payment.Date(2024, time.December, 5),
		Status:    payment.StatusPending,
	}
	require.NoError(t, ledger.Seed(context.Background(), []*payment.Record{rec}))

	f := flow.New(flow.Deps{Ledger: ledger, Confirmer: flow.DelayConfirmer{Delay: time.Hour}, Lease: lease.Default()})

	m, err := NewPaymentModel(f, lease.Default(), rec)
	require.NoError(t, err)

	return m, f
}

func TestPaymentModel_NoMethodSelected(t *testing.T) {
	m, f := newPaymentDialog(t)
	assert.Equal(t, payment.Method(""), *m.method)

	m, cmd := m.submit()
	assert.NotNil(t, cmd)
	assert.Equal(t, paymentStateMethod, m.state)
	assert.Equal(t, "Veuillez choisir un moyen de paiement.", m.status)
	assert.Equal(t, flow.StateMethodSelection, f.State())
}

func TestPaymentModel_SubmitWithMethod(t *testing.T) {
	m, f := newPaymentDialog(t)
	*m.method = payment.MethodCash

	m, cmd := m.submit()
	assert.NotNil(t, cmd)
	assert.Equal(t, paymentStateProcessing, m.state)
	assert.Empty(t, m.status)
	assert.Equal(t, flow.StateProcessing, f.State())
	require.NoError(t, f.Cancel())

	_, method := f.Selection()
	assert.Equal(t, payment.MethodCash, method)
}

func TestBrowser_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Browser{}.Open(ctx, flow.PayPalURL)
	assert.ErrorIs(t, err, context.Canceled)
}
