package document

import (
	"fmt"
	"time"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

// Rows past this ordinate continue on a new page.
const historyPageBreak = 260.0

func historyName(now time.Time, ext string) string {
	return fmt.Sprintf("Kushtati-Historique-Paiements-Locataire-%d.%s", now.Year(), ext)
}

func stateColor(s payment.DisplayState) rgb {
	switch s {
	case payment.StatePaid:
		return colorGreen
	case payment.StateOverdue:
		return colorRed
	}

	return colorAmber
}

// PaymentHistory renders the tenant ledger as a paginated table followed by a
// financial summary. Status labels are derived at render time.
func (r *Renderer) PaymentHistory(records []*payment.Record) (*Artifact, error) {
	now := r.clock()
	return r.historyPDF(records, now).artifact(historyName(now, "pdf"))
}

func (r *Renderer) historyPDF(records []*payment.Record, now time.Time) *canvas {
	c := newCanvas("Historique des paiements", now)
	c.installFooter(now, true)
	c.AddPage()

	c.fillColor(colorLight)
	c.Rect(0, 0, pageWidth, 50, "F")
	c.fillColor(colorAccent)
	c.Circle(20, 20, 8, "F")
	c.textColor(colorWhite)
	c.font("B", 16)
	c.textCenter(20, 23, "K")

	c.textColor(colorPrimary)
	c.font("B", 20)
	c.text(35, 20, "HISTORIQUE DES PAIEMENTS")
	c.font("", 10)
	c.textColor(colorMuted)
	c.text(35, 28, "Date d'émission : "+format.Date(now))
	c.text(35, 35, "Locataire - Kushtati Immo")

	c.panel(55, 35, colorLight)
	c.font("B", 12)
	c.textColor(colorPrimary)
	c.text(20, 65, "Informations du logement")
	c.font("", 9)
	c.text(20, 73, "Adresse : "+r.lease.Address)
	c.text(20, 80, "Loyer mensuel : "+format.Amount(r.lease.MonthlyRent))
	c.text(120, 80, "Contact : "+r.lease.LandlordPhone)
	c.text(120, 86, "Propriétaire : "+r.lease.Landlord)

	y := 100.0
	c.font("B", 14)
	c.text(marginLeft, y, "Historique des Paiements")
	y += 8

	header := func() {
		c.fillColor(colorAccent)
		c.Rect(marginLeft, y, marginRight-marginLeft, 10, "F")
		c.font("B", 9)
		c.textColor(colorWhite)
		c.text(18, y+7, "Période")
		c.text(70, y+7, "Montant")
		c.text(105, y+7, "Date limite")
		c.text(140, y+7, "Date paiement")
		c.text(175, y+7, "Statut")
		y += 12
	}

	header()

	for i, rec := range records {
		if i%2 == 0 {
			c.fillColor(colorStripe)
			c.Rect(marginLeft, y-5, marginRight-marginLeft, 10, "F")
		}

		c.font("", 8)
		c.textColor(colorPrimary)
		c.text(18, y+2, rec.Period)
		c.text(70, y+2, format.Amount(rec.AmountDue))
		c.text(105, y+2, format.Date(rec.DueDate))

		paid := "-"
		if rec.PaidDate != nil {
			paid = format.Date(*rec.PaidDate)
		}

		c.text(140, y+2, paid)

		state := payment.Derive(rec, now)
		c.textColor(stateColor(state))
		c.text(175, y+2, state.Label())

		y += 10

		if y > historyPageBreak && i < len(records)-1 {
			c.AddPage()
			y = 20
			header()
		}
	}

	y += 10
	if y > 240 {
		c.AddPage()
		y = 20
	}

	s := payment.Summarize(records, now)

	c.panel(y, 42, colorLight)
	y += 10
	c.font("B", 12)
	c.textColor(colorPrimary)
	c.text(20, y, "Résumé Financier")

	y += 10
	c.font("", 10)
	c.text(20, y, fmt.Sprintf("Total paiements effectués : %d mois", s.Paid))
	y += 7
	c.text(20, y, "Montant total payé : "+format.Amount(s.TotalPaid))
	y += 7
	c.textColor(colorAmber)
	c.text(20, y, fmt.Sprintf("Paiements en attente : %d mois (%s)", s.Unpaid(), format.Amount(s.TotalOutstanding)))

	if s.Overdue > 0 {
		y += 7
		c.textColor(colorRed)
		c.text(20, y, fmt.Sprintf("Dont en retard : %d mois", s.Overdue))
	}

	return c
}
