package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

var testNow = time.Date(2024, time.December, 10, 11, 0, 0, 0, time.UTC)

func newTestRenderer() *Renderer {
	return NewRenderer(lease.Default(), func() time.Time { return testNow })
}

func assertPDF(t *testing.T, a *Artifact) {
	t.Helper()

	require.NotNil(t, a)
	assert.Equal(t, ContentTypePDF, a.ContentType)
	assert.True(t, bytes.HasPrefix(a.Data, []byte("%PDF-")), "missing pdf header")
}

func TestReceipt(t *testing.T) {
	r := newTestRenderer()
	paid := payment.DefaultRecords()[2]

	a, err := r.Receipt(paid)
	require.NoError(t, err)
	assertPDF(t, a)
	assert.Equal(t, "Recu-Paiement-Novembre-2024-TX-1730678400000-CARTE.pdf", a.Name)
}

func TestReceipt_Unpaid(t *testing.T) {
	r := newTestRenderer()

	_, err := r.Receipt(payment.DefaultRecords()[0])
	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestPaymentHistory(t *testing.T) {
	r := newTestRenderer()

	a, err := r.PaymentHistory(payment.DefaultRecords())
	require.NoError(t, err)
	assertPDF(t, a)
	assert.Equal(t, "Kushtati-Historique-Paiements-Locataire-2024.pdf", a.Name)
}

func TestPaymentHistory_Paginates(t *testing.T) {
	r := newTestRenderer()

	short := r.historyPDF(payment.DefaultRecords(), testNow)
	assert.Equal(t, 1, short.PageCount())

	var long []*payment.Record
	for i := range 40 {
		long = append(long, &payment.Record{
			ID:        uuid.New(),
			Period:    fmt.Sprintf("Mois %d", i+1),
			AmountDue: 3_500_000,
			DueDate:   payment.Date(2022, time.January, 5).AddDate(0, i, 0),
			Status:    payment.StatusPending,
		})
	}

	c := r.historyPDF(long, testNow)
	assert.GreaterOrEqual(t, c.PageCount(), 3)
	assert.False(t, c.Err())
}

func TestHistorySheet(t *testing.T) {
	r := newTestRenderer()

	a, err := r.HistorySheet(payment.DefaultRecords())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, a.ContentType)
	assert.Equal(t, "Kushtati-Historique-Paiements-Locataire-2024.xlsx", a.Name)

	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 7)

	assert.Equal(t, "Période", rows[0][0])
	assert.Equal(t, "Décembre 2024", rows[1][0])
	assert.Equal(t, "En retard", rows[1][4])
	assert.Equal(t, "Paiement anticipé", rows[2][4])
	assert.Equal(t, "Payé", rows[3][4])
	assert.Equal(t, "Carte bancaire", rows[3][5])
}

func TestBundle(t *testing.T) {
	r := newTestRenderer()

	a, err := r.Bundle(payment.DefaultRecords())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeZIP, a.ContentType)
	assert.Equal(t, "Kushtati-Recus-20241210.zip", a.Name)

	zr, err := zip.NewReader(bytes.NewReader(a.Data), int64(len(a.Data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.Len(t, names, 5)
	assert.Contains(t, names, "Recu-Paiement-Août-2024-TX-1722470400000-VIREMENT.pdf")
	assert.Contains(t, names, "recapitulatif.txt")

	for _, f := range zr.File {
		if f.Name != "recapitulatif.txt" {
			continue
		}

		rc, err := f.Open()
		require.NoError(t, err)

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		assert.Contains(t, string(body), "* 03/11/2024 | Novembre 2024 | 3 500 000 GNF | Carte bancaire |")
	}
}

func TestMonthlyReport(t *testing.T) {
	r := newTestRenderer()
	rep := portfolio.BuildMonthlyReport(portfolio.DefaultProperties(), maintenance.OwnerInterventions(),
		time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC))

	a, err := r.MonthlyReport(rep)
	require.NoError(t, err)
	assertPDF(t, a)
	assert.Equal(t, "Kushtati-Rapport-Mensuel-2025-12.pdf", a.Name)
}

func TestTaxDeclaration(t *testing.T) {
	r := newTestRenderer()
	d := portfolio.BuildTaxDeclaration(portfolio.DefaultProperties(), maintenance.OwnerInterventions(), 2025)

	a, err := r.TaxDeclaration(d)
	require.NoError(t, err)
	assertPDF(t, a)
	assert.Equal(t, "Kushtati-Declaration-Fiscale-2025.pdf", a.Name)
}
