package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

// Receipts renders a receipt for every paid record, skipping the others.
func (r *Renderer) Receipts(records []*payment.Record) ([]*Artifact, error) {
	var out []*Artifact

	for _, rec := range records {
		if !rec.IsPaid() {
			continue
		}

		a, err := r.Receipt(rec)
		if err != nil {
			return nil, fmt.Errorf("rendering receipt for %s: %w", rec.Period, err)
		}

		out = append(out, a)
	}

	return out, nil
}

// Recap lists paid records one per line, for the archive and for emails.
func Recap(records []*payment.Record) string {
	var sb strings.Builder

	for _, rec := range records {
		if !rec.IsPaid() {
			continue
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			format.Date(*rec.PaidDate),
			rec.Period,
			format.Plain(format.Amount(rec.AmountDue)),
			rec.Method.Label(),
			ReceiptName(rec),
		)
	}

	return sb.String()
}

// Bundle packs the paid receipts and a recap file into one ZIP archive.
func (r *Renderer) Bundle(records []*payment.Record) (*Artifact, error) {
	receipts, err := r.Receipts(records)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, a := range receipts {
		w, err := zw.Create(a.Name)
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", a.Name, err)
		}

		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", a.Name, err)
		}
	}

	w, err := zw.Create("recapitulatif.txt")
	if err != nil {
		return nil, fmt.Errorf("adding recap: %w", err)
	}

	if _, err := w.Write([]byte(Recap(records))); err != nil {
		return nil, fmt.Errorf("writing recap: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	name := fmt.Sprintf("Kushtati-Recus-%s.zip", r.clock().Format("20060102"))

	return &Artifact{Name: name, ContentType: ContentTypeZIP, Data: buf.Bytes()}, nil
}
