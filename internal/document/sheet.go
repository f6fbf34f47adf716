package document

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

const historySheet = "Historique"

// HistorySheet exports the ledger as a workbook with one row per period and
// a totals row.
func (r *Renderer) HistorySheet(records []*payment.Record) (*Artifact, error) {
	now := r.clock()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(historySheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	index, err := f.GetSheetIndex(historySheet)
	if err != nil {
		return nil, fmt.Errorf("locating sheet: %w", err)
	}

	f.SetActiveSheet(index)

	headers := []string{"Période", "Montant (GNF)", "Date limite", "Date paiement", "Statut", "Moyen de paiement", "N° de transaction"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(historySheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}

	if err := f.SetRowStyle(historySheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for i, rec := range records {
		paidOn := ""
		if rec.PaidDate != nil {
			paidOn = format.Date(*rec.PaidDate)
		}

		row := []any{
			rec.Period,
			rec.AmountDue,
			format.Date(rec.DueDate),
			paidOn,
			payment.Derive(rec, now).Label(),
			rec.Method.Label(),
			rec.TransactionID,
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	s := payment.Summarize(records, now)
	totalRow := len(records) + 3

	totals := [][2]any{
		{"Total payé", s.TotalPaid},
		{"Reste à payer", s.TotalOutstanding},
	}

	for i, t := range totals {
		cell, _ := excelize.CoordinatesToCellName(1, totalRow+i)
		if err := f.SetSheetRow(historySheet, cell, &[]any{t[0], t[1]}); err != nil {
			return nil, fmt.Errorf("writing totals: %w", err)
		}
	}

	if err := f.SetColWidth(historySheet, "A", "G", 20); err != nil {
		return nil, fmt.Errorf("sizing columns: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return &Artifact{Name: historyName(now, "xlsx"), ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}
