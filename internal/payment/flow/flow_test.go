package flow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kushtati/kushtati-immo/internal/document"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
	"github.com/kushtati/kushtati-immo/internal/payment/store"
)

var now = time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)

// gateConfirmer blocks until released or cancelled.
type gateConfirmer struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gateConfirmer {
	return &gateConfirmer{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gateConfirmer) Confirm(ctx context.Context, _ *payment.Record, _ payment.Method) error {
	g.started <- struct{}{}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.release:
		return nil
	}
}

type fakeRenderer struct {
	mu       sync.Mutex
	rendered []string
}

func (r *fakeRenderer) Receipt(rec *payment.Record) (*document.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rendered = append(r.rendered, rec.TransactionID)

	return &document.Artifact{Name: document.ReceiptName(rec), ContentType: document.ContentTypePDF}, nil
}

type fakeNavigator struct {
	urls []string
}

func (n *fakeNavigator) Open(_ context.Context, url string) error {
	n.urls = append(n.urls, url)
	return nil
}

type fixture struct {
	ledger   *payment.Service
	records  []*payment.Record
	renderer *fakeRenderer
	nav      *fakeNavigator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	svc := payment.NewService(store.NewMemory(), func() time.Time { return now })
	records := payment.DefaultRecords()
	require.NoError(t, svc.Seed(context.Background(), records))

	return &fixture{ledger: svc, records: records, renderer: &fakeRenderer{}, nav: &fakeNavigator{}}
}

func (fx *fixture) flow(c flow.Confirmer) *flow.Flow {
	return flow.New(flow.Deps{
		Ledger:    fx.ledger,
		Renderer:  fx.renderer,
		Confirmer: c,
		Navigator: fx.nav,
		Lease:     lease.Default(),
	})
}

func instant() flow.Confirmer { return flow.DelayConfirmer{} }

func wait(t *testing.T, ch <-chan flow.Result) flow.Result {
	t.Helper()

	select {
	case res, ok := <-ch:
		require.True(t, ok, "result channel closed without a result")
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	return flow.Result{}
}

func TestFlow_Settles(t *testing.T) {
	type testCase struct {
		name         string
		method       payment.Method
		wantCode     string
		wantInMsg    string
		wantRedirect string
	}

	tests := []testCase{
		{name: "Card", method: payment.MethodCard, wantCode: "CARTE", wantInMsg: "carte bancaire"},
		{name: "Transfer", method: payment.MethodTransfer, wantCode: "VIREMENT", wantInMsg: "Ibrahim Sow"},
		{name: "Orange", method: payment.MethodOrangeMoney, wantCode: "ORANGE", wantInMsg: "Orange Money"},
		{name: "MTN", method: payment.MethodMTNMoney, wantCode: "MTN", wantInMsg: "+224 623 93 63 13"},
		{name: "PayPal", method: payment.MethodPayPal, wantCode: "PAYPAL", wantInMsg: "PayPal", wantRedirect: flow.PayPalURL},
		{name: "Cash", method: payment.MethodCash, wantCode: "ESPECES", wantInMsg: "demander un reçu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			f := fx.flow(instant())

			require.NoError(t, f.Select(fx.records[0]))
			assert.Equal(t, flow.StateMethodSelection, f.State())
			require.NoError(t, f.ChooseMethod(tt.method))

			ch, err := f.Submit(context.Background())
			require.NoError(t, err)

			res := wait(t, ch)
			require.NoError(t, res.Err)

			assert.Equal(t, flow.StateSettled, f.State())
			assert.Equal(t, payment.StatusPaid, res.Record.Status)
			assert.Regexp(t, `^TX-\d+-`+tt.wantCode+`$`, res.Record.TransactionID)
			assert.NoError(t, payment.Validate(res.Record))
			assert.Contains(t, res.Message, tt.wantInMsg)
			assert.Equal(t, tt.wantRedirect, res.RedirectURL)
			require.NotNil(t, res.Receipt)
			assert.Equal(t, document.ReceiptName(res.Record), res.Receipt.Name)

			if tt.wantRedirect != "" {
				assert.Equal(t, []string{tt.wantRedirect}, fx.nav.urls)
			} else {
				assert.Empty(t, fx.nav.urls)
			}

			stored, err := fx.ledger.Get(context.Background(), fx.records[0].ID)
			require.NoError(t, err)
			assert.Equal(t, res.Record, stored)

			require.NoError(t, f.Reset())
			assert.Equal(t, flow.StateIdle, f.State())
		})
	}
}

func TestFlow_NoMethodSelected(t *testing.T) {
	fx := newFixture(t)
	f := fx.flow(instant())

	require.NoError(t, f.Select(fx.records[0]))

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, flow.ErrNoMethodSelected)
	assert.Equal(t, flow.StateMethodSelection, f.State())

	require.NoError(t, f.ChooseMethod(payment.MethodCard))
	require.NoError(t, f.ChooseMethod(payment.MethodCash))

	_, m := f.Selection()
	assert.Equal(t, payment.MethodCash, m)
}

func TestFlow_InvalidTransitions(t *testing.T) {
	fx := newFixture(t)
	f := fx.flow(instant())

	assert.ErrorIs(t, f.ChooseMethod(payment.MethodCard), flow.ErrInvalidTransition)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, flow.ErrInvalidTransition)

	assert.ErrorIs(t, f.Reset(), flow.ErrInvalidTransition)

	assert.ErrorIs(t, f.Select(fx.records[2]), payment.ErrAlreadyPaid)
	assert.Equal(t, flow.StateIdle, f.State())

	require.NoError(t, f.Select(fx.records[0]))
	assert.ErrorIs(t, f.ChooseMethod("bitcoin"), payment.ErrUnknownMethod)
	assert.ErrorIs(t, f.Select(fx.records[1]), flow.ErrInvalidTransition)
}

func TestFlow_CancelBeforeCommit(t *testing.T) {
	fx := newFixture(t)
	gate := newGate()
	f := fx.flow(gate)

	require.NoError(t, f.Select(fx.records[0]))
	require.NoError(t, f.ChooseMethod(payment.MethodCard))

	ch, err := f.Submit(context.Background())
	require.NoError(t, err)

	<-gate.started
	assert.Equal(t, flow.StateProcessing, f.State())

	require.NoError(t, f.Cancel())
	assert.Equal(t, flow.StateIdle, f.State())

	res := wait(t, ch)
	assert.ErrorIs(t, res.Err, flow.ErrCancelled)

	rec, m := f.Selection()
	assert.Nil(t, rec)
	assert.Empty(t, m)

	stored, err := fx.ledger.Get(context.Background(), fx.records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, stored.Status)
	assert.Empty(t, stored.TransactionID)
	assert.Empty(t, fx.renderer.rendered)
}

func TestFlow_ContextCancelledBeforeCommit(t *testing.T) {
	fx := newFixture(t)
	gate := newGate()
	f := fx.flow(gate)

	require.NoError(t, f.Select(fx.records[0]))
	require.NoError(t, f.ChooseMethod(payment.MethodOrangeMoney))

	ctx, cancel := context.WithCancel(context.Background())

	ch, err := f.Submit(ctx)
	require.NoError(t, err)

	<-gate.started
	cancel()

	res := wait(t, ch)
	assert.ErrorIs(t, res.Err, flow.ErrCancelled)
	assert.Equal(t, flow.StateIdle, f.State())

	stored, err := fx.ledger.Get(context.Background(), fx.records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, stored.Status)
}

// blockingLedger holds ApplyPayment until released so tests can observe the
// committing window.
type blockingLedger struct {
	inner   flow.Ledger
	entered chan struct{}
	release chan struct{}
}

func (l *blockingLedger) ApplyPayment(ctx context.Context, id uuid.UUID, m payment.Method) (*payment.Record, error) {
	l.entered <- struct{}{}
	<-l.release

	return l.inner.ApplyPayment(ctx, id, m)
}

func TestFlow_CancelRefusedWhileCommitting(t *testing.T) {
	fx := newFixture(t)
	ledger := &blockingLedger{inner: fx.ledger, entered: make(chan struct{}, 1), release: make(chan struct{})}

	f := flow.New(flow.Deps{Ledger: ledger, Confirmer: instant(), Lease: lease.Default()})

	require.NoError(t, f.Select(fx.records[0]))
	require.NoError(t, f.ChooseMethod(payment.MethodCash))

	ch, err := f.Submit(context.Background())
	require.NoError(t, err)

	<-ledger.entered
	assert.ErrorIs(t, f.Cancel(), flow.ErrInvalidTransition)
	close(ledger.release)

	res := wait(t, ch)
	require.NoError(t, res.Err)
	assert.Equal(t, flow.StateSettled, f.State())
	assert.Nil(t, res.Receipt)
}

func TestFlow_AlreadyPaidIsNoop(t *testing.T) {
	fx := newFixture(t)
	f := fx.flow(instant())

	require.NoError(t, f.Select(fx.records[0]))
	require.NoError(t, f.ChooseMethod(payment.MethodCard))

	first, err := fx.ledger.ApplyPayment(context.Background(), fx.records[0].ID, payment.MethodMTNMoney)
	require.NoError(t, err)

	ch, err := f.Submit(context.Background())
	require.NoError(t, err)

	res := wait(t, ch)
	require.NoError(t, res.Err)
	assert.True(t, res.AlreadyPaid)
	assert.Equal(t, first.TransactionID, res.Record.TransactionID)
	assert.Equal(t, payment.MethodMTNMoney, res.Record.Method)
}

type failingLedger struct{}

func (failingLedger) ApplyPayment(context.Context, uuid.UUID, payment.Method) (*payment.Record, error) {
	return nil, payment.ErrNotFound
}

func TestFlow_LedgerErrorReturnsToIdle(t *testing.T) {
	fx := newFixture(t)
	f := flow.New(flow.Deps{Ledger: failingLedger{}, Confirmer: instant()})

	require.NoError(t, f.Select(fx.records[0]))
	require.NoError(t, f.ChooseMethod(payment.MethodCard))

	ch, err := f.Submit(context.Background())
	require.NoError(t, err)

	res := wait(t, ch)
	assert.True(t, errors.Is(res.Err, payment.ErrNotFound))
	assert.Equal(t, flow.StateIdle, f.State())
}

func TestFlow_SelectAfterSettled(t *testing.T) {
	fx := newFixture(t)
	f := fx.flow(instant())

	require.NoError(t, f.Select(fx.records[0]))
	require.NoError(t, f.ChooseMethod(payment.MethodCard))

	ch, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NoError(t, wait(t, ch).Err)

	require.NoError(t, f.Select(fx.records[1]))
	assert.Equal(t, flow.StateMethodSelection, f.State())

	rec, m := f.Selection()
	assert.Equal(t, "Janvier 2025", rec.Period)
	assert.Empty(t, m)
}

func TestInstructions(t *testing.T) {
	for _, m := range payment.Methods {
		assert.NotEmpty(t, flow.Instructions(m, lease.Default()), m)
	}
}

func TestDelayConfirmer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := flow.DelayConfirmer{Delay: time.Hour}.Confirm(ctx, nil, payment.MethodCard)
	assert.ErrorIs(t, err, context.Canceled)
}
