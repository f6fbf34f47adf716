// Package ledgercsv reads payment records from semicolon separated files.
package ledgercsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/kushtati/kushtati-immo/internal/encoding"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

var dateLayouts = []string{"02/01/2006", "2006-01-02"}

// Parser auto-detects the layout by matching column headers against known
// profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]*payment.Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching ledger format found: expected historique or seed columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a due date (totals, blank lines) and fails on
// any other malformed row.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]*payment.Record, error) {
	var records []*payment.Record

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		dueStr := cellValue(row, cols[p.DueCol])
		if dueStr == "" {
			continue
		}

		due, err := parseDate(dueStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: due date: %w", rowNum, err)
		}

		period := cellValue(row, cols[p.PeriodCol])
		if period == "" {
			return nil, fmt.Errorf("row %d: missing period", rowNum)
		}

		amount, err := parseAmount(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: amount: %w", rowNum, err)
		}

		rec := &payment.Record{
			Period:    period,
			AmountDue: amount,
			DueDate:   due,
			Status:    payment.StatusPending,
		}

		if isPaid(cellValue(row, cols[p.StatusCol])) {
			if err := fillPaid(rec, p, cols, row); err != nil {
				return nil, fmt.Errorf("row %d: %w", rowNum, err)
			}
		}

		if err := payment.Validate(rec); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func fillPaid(rec *payment.Record, p *Profile, cols colIndex, row []string) error {
	paidOn, err := parseDate(optionalCell(row, cols, p.PaidCol))
	if err != nil {
		return fmt.Errorf("paid date: %w", err)
	}

	method, err := parseMethod(optionalCell(row, cols, p.MethodCol))
	if err != nil {
		return err
	}

	rec.Status = payment.StatusPaid
	rec.PaidDate = new(paidOn)
	rec.Method = method
	rec.TransactionID = optionalCell(row, cols, p.TxCol)

	return nil
}

// parseMethod accepts both the method key and its label.
func parseMethod(s string) (payment.Method, error) {
	if m, ok := payment.MethodFromLabel(s); ok {
		return m, nil
	}

	return payment.ParseMethod(s)
}

func isPaid(s string) bool {
	switch strings.ToLower(s) {
	case "payé", "paye", string(payment.StatusPaid):
		return true
	}

	return false
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func optionalCell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
