package ledgercsv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/kushtati/kushtati-immo/internal/importer/ledgercsv"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Historique(t *testing.T) {
	csv := `Kushtati Immo;Historique des paiements

Période;Montant (GNF);Date limite;Date paiement;Statut;Moyen de paiement;N° de transaction
Décembre 2024;3 500 000 GNF;05/12/2024;;En retard;;
Novembre 2024;3.500.000;05/11/2024;03/11/2024;Payé;Carte bancaire;TX-1730678400000-CARTE
;;;;;;
Total payé;3500000;;;;;
`

	p := ledgercsv.NewParser()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Décembre 2024", records[0].Period)
	assert.Equal(t, int64(3_500_000), records[0].AmountDue)
	assert.Equal(t, date(2024, 12, 5), records[0].DueDate)
	assert.Equal(t, payment.StatusPending, records[0].Status)
	assert.Nil(t, records[0].PaidDate)

	assert.Equal(t, payment.StatusPaid, records[1].Status)
	assert.Equal(t, payment.MethodCard, records[1].Method)
	assert.Equal(t, "TX-1730678400000-CARTE", records[1].TransactionID)
	require.NotNil(t, records[1].PaidDate)
	assert.Equal(t, date(2024, 11, 3), *records[1].PaidDate)
}

func TestParser_Seed(t *testing.T) {
	csv := `period;amount_due;due_date;status;paid_date;method;transaction_id
Janvier 2025;3500000;2025-01-05;pending;;;
Octobre 2024;3500000;2024-10-05;paid;2024-10-04;orange;TX-1728086400000-ORANGE
`

	p := ledgercsv.NewParser()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, date(2025, 1, 5), records[0].DueDate)
	assert.Equal(t, payment.MethodOrangeMoney, records[1].Method)
}

func TestParser_Windows1252(t *testing.T) {
	content := "period;amount_due;due_date;status\nFévrier 2025;3500000;2025-02-05;pending\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(content)
	require.NoError(t, err)

	p := ledgercsv.NewParser()
	records, err := p.Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Février 2025", records[0].Period)
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "Unknown Layout",
			csv:     "Data mov.;Descrição;Montante\n30-01-2026;X;-10,00\n",
			wantErr: "no matching ledger format",
		},
		{
			name:    "Bad Amount",
			csv:     "period;amount_due;due_date;status\nMars 2025;beaucoup;2025-03-05;pending\n",
			wantErr: "row 2: amount",
		},
		{
			name:    "Fractional Amount",
			csv:     "period;amount_due;due_date;status\nMars 2025;3500000,50;2025-03-05;pending\n",
			wantErr: "row 2: amount",
		},
		{
			name:    "Bad Date",
			csv:     "period;amount_due;due_date;status\nMars 2025;3500000;5 mars;pending\n",
			wantErr: "row 2: due date",
		},
		{
			name:    "Paid Without Transaction",
			csv:     "period;amount_due;due_date;status;paid_date;method\nMars 2025;3500000;2025-03-05;paid;2025-03-01;mtn\n",
			wantErr: "row 2: paid record is missing paid fields",
		},
		{
			name:    "Paid Unknown Method",
			csv:     "period;amount_due;due_date;status;paid_date;method;transaction_id\nMars 2025;3500000;2025-03-05;paid;2025-03-01;cheque;TX-1-CHEQUE\n",
			wantErr: "unknown payment method",
		},
		{
			name:    "Missing Period",
			csv:     "period;amount_due;due_date;status\n;3500000;2025-03-05;pending\n",
			wantErr: "row 2: missing period",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledgercsv.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_HeaderOnly(t *testing.T) {
	records, err := ledgercsv.NewParser().Parse(strings.NewReader("period;amount_due;due_date;status\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
