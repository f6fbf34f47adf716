package document

import (
	"fmt"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

// ReceiptName is the download name of the receipt for rec.
func ReceiptName(rec *payment.Record) string {
	return fmt.Sprintf("Recu-Paiement-%s-%s.pdf", dashed(rec.Period), rec.TransactionID)
}

// Receipt renders the payment confirmation of a paid record.
func (r *Renderer) Receipt(rec *payment.Record) (*Artifact, error) {
	if !rec.IsPaid() || rec.PaidDate == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotPaid, rec.Period)
	}

	now := r.clock()
	c := newCanvas("Reçu de paiement "+rec.Period, now)
	c.installFooter(now, false)
	c.AddPage()

	c.banner("REÇU DE PAIEMENT", "N° "+rec.TransactionID)

	y := 65.0
	c.panel(y, 95, colorLight)

	y += 10
	c.font("B", 14)
	c.textColor(colorAccent)
	c.text(20, y, "DÉTAILS DU PAIEMENT")

	details := [][2]string{
		{"Date de paiement :", format.Date(*rec.PaidDate)},
		{"Période :", rec.Period},
		{"Montant payé :", format.Amount(rec.AmountDue)},
		{"Montant en lettres :", format.AmountInWords(rec.AmountDue)},
		{"Moyen de paiement :", rec.Method.Label()},
		{"N° de transaction :", rec.TransactionID},
		{"Statut :", "PAYÉ"},
	}

	y += 12

	for i, d := range details {
		c.font("", 11)
		c.textColor(colorPrimary)
		c.text(25, y, d[0])

		switch i {
		case 2:
			c.font("B", 14)
			c.textColor(colorAccent)
		case 3:
			c.font("", 8)
		default:
			c.font("B", 11)
		}

		c.text(85, y, d[1])

		y += 9
	}

	y += 8
	c.panel(y, 60, colorLight)

	y += 10
	c.font("B", 14)
	c.textColor(colorAccent)
	c.text(20, y, "INFORMATIONS")

	y += 12
	c.textColor(colorPrimary)

	block := func(label string, lines ...string) {
		c.font("B", 10)
		c.text(25, y, label)
		c.font("", 10)

		for i, l := range lines {
			c.text(25, y+5*float64(i+1), l)
		}

		y += 5*float64(len(lines)) + 10
	}

	block("Locataire :", r.lease.Tenant)
	block("Propriétaire :", r.lease.Landlord, r.lease.LandlordPhone)
	block("Propriété :", r.lease.Property, r.lease.Location)

	y += 2
	c.fillColor(rgb{220, 252, 231})
	c.RoundedRect(marginLeft, y, marginRight-marginLeft, 15, 3, "1234", "F")

	y += 6
	c.textColor(rgb{22, 101, 52})
	c.font("B", 9)
	c.text(20, y, "NOTE :")
	c.font("", 8)
	c.text(20, y+5, "Ce reçu confirme le paiement du loyer. Conservez-le précieusement.")

	return c.artifact(ReceiptName(rec))
}
