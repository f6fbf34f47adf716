package document

import (
	"fmt"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}

// MonthlyReport renders the owner activity report.
func (r *Renderer) MonthlyReport(rep portfolio.MonthlyReport) (*Artifact, error) {
	now := r.clock()
	c := newCanvas("Rapport mensuel "+format.MonthYear(rep.Month), now)
	c.installFooter(now, true)
	c.AddPage()

	c.banner("Rapport Mensuel", format.MonthYear(rep.Month), "Réf : "+rep.Reference)

	y := 60.0
	c.panel(y, 45, colorLight)
	y += 8

	section := func(title string) {
		c.font("B", 14)
		c.textColor(colorAccent)
		c.text(20, y, title)
		y += 10
	}

	rows := func(lines [][2]string, step float64) {
		c.textColor(colorPrimary)

		for _, l := range lines {
			c.font("", 10)
			c.text(20, y, l[0])
			c.font("B", 11)
			c.text(120, y, l[1])
			y += step
		}
	}

	section("RÉSUMÉ FINANCIER")
	rows([][2]string{
		{"Revenus mensuels :", format.Amount(rep.Stats.MonthlyRevenue)},
		{"Revenus annuels :", format.Amount(rep.AnnualRevenue)},
		{"Dépenses maintenance :", format.Amount(rep.Expenses)},
		{"Bénéfice net :", format.Amount(rep.NetProfit)},
	}, 7)

	y += 8
	c.panel(y, 38, colorLight)
	y += 8

	section("PORTEFEUILLE IMMOBILIER")
	rows([][2]string{
		{"Total propriétés :", fmt.Sprint(rep.Stats.Total)},
		{"Propriétés louées :", fmt.Sprint(rep.Stats.Rented)},
		{"Propriétés disponibles :", fmt.Sprint(rep.Stats.Available)},
		{"Taux d'occupation :", rep.Stats.OccupancyRate.StringFixed(1) + "%"},
	}, 6)

	y += 10
	section("DÉTAIL PAR PROPRIÉTÉ")

	for i, p := range rep.Properties {
		if y > 250 {
			c.AddPage()
			y = 25
		}

		if i%2 == 0 {
			c.fillColor(colorStripe)
			c.RoundedRect(marginLeft, y-3, marginRight-marginLeft, 24, 2, "1234", "F")
		}

		c.font("B", 11)
		c.textColor(colorPrimary)
		c.text(20, y, p.Title)
		y += 6

		c.font("", 9)
		c.text(20, y, p.Location)
		c.font("B", 9)
		c.textColor(colorAccent)
		c.text(120, y, format.Amount(p.Rent)+"/mois")
		c.textColor(colorPrimary)
		y += 5

		if p.Tenant != "" {
			c.font("", 8)
			c.text(20, y, "Locataire : "+p.Tenant)

			if p.LastPayment != nil {
				c.text(100, y, "Dernier paiement : "+format.Date(*p.LastPayment))
			}

			y += 4
		}

		c.font("B", 8)

		if p.UnpaidMonths > 0 {
			c.textColor(colorRed)
			c.text(20, y, fmt.Sprintf("%d mois impayé(s) - %s", p.UnpaidMonths, format.Amount(p.Arrears())))
		} else {
			c.textColor(colorGreen)
			c.text(20, y, "Paiements à jour")
		}

		y += 8
	}

	return c.artifact(fmt.Sprintf("Kushtati-Rapport-Mensuel-%s.pdf", rep.Month.Format("2006-01")))
}

// TaxDeclaration renders the yearly rental income declaration.
func (r *Renderer) TaxDeclaration(d portfolio.TaxDeclaration) (*Artifact, error) {
	now := r.clock()
	c := newCanvas(fmt.Sprintf("Déclaration fiscale %d", d.Year), now)
	c.installFooter(now, true)
	c.AddPage()

	c.banner("Déclaration Fiscale", fmt.Sprintf("Année fiscale %d", d.Year), "Réf : "+d.Reference)

	y := 60.0
	c.fillColor(rgb{254, 243, 199})
	c.RoundedRect(marginLeft, y, marginRight-marginLeft, 22, 3, "1234", "F")

	y += 8
	c.font("B", 12)
	c.textColor(rgb{146, 64, 14})
	c.textCenter(pageCenter, y, "REVENU IMPOSABLE NET")
	y += 8
	c.font("B", 20)
	c.textColor(colorPrimary)
	c.textCenter(pageCenter, y, format.Amount(d.TaxableIncome))

	y += 12
	c.font("B", 14)
	c.textColor(colorAccent)
	c.text(20, y, "DÉTAIL DES REVENUS LOCATIFS")
	y += 8

	c.fillColor(colorLight)
	c.RoundedRect(marginLeft, y-2, marginRight-marginLeft, 8, 2, "1234", "F")
	c.font("B", 9)
	c.textColor(colorPrimary)
	c.text(20, y+3, "Propriété")
	c.text(80, y+3, "Localisation")
	c.text(125, y+3, "Loyer/Mois")
	c.text(160, y+3, "Revenus annuels")
	y += 9

	for i, l := range d.Revenue {
		if y > 250 {
			c.AddPage()
			y = 25
		}

		if i%2 == 0 {
			c.fillColor(colorStripe)
			c.Rect(marginLeft, y-4, marginRight-marginLeft, 6, "F")
		}

		c.font("", 8)
		c.textColor(colorPrimary)
		c.text(20, y, truncate(l.Property, 25))
		c.text(80, y, truncate(l.Location, 20))
		c.text(125, y, format.Amount(l.MonthlyRent))
		c.font("B", 8)
		c.textColor(colorAccent)
		c.text(160, y, format.Amount(l.AnnualRevenue))
		y += 6
	}

	y += 3
	c.drawColor(colorAccent)
	c.SetLineWidth(1)
	c.Line(125, y, 185, y)
	y += 6
	c.font("B", 11)
	c.textColor(colorPrimary)
	c.text(80, y, "TOTAL REVENUS BRUTS")
	c.textColor(colorAccent)
	c.textRight(marginRight, y, format.Amount(d.AnnualRevenue))

	y += 12
	c.font("B", 14)
	c.text(20, y, "DÉPENSES DÉDUCTIBLES")
	y += 8

	c.font("B", 9)
	c.textColor(colorPrimary)
	c.text(25, y, "Type")
	c.text(65, y, "Propriété")
	c.text(120, y, "Date")
	c.text(160, y, "Montant")
	y += 5
	c.drawColor(colorRule)
	c.SetLineWidth(0.5)
	c.Line(25, y, 185, y)
	y += 5

	c.font("", 8)

	for _, w := range d.Expenses {
		if y > historyPageBreak {
			c.AddPage()
			y = 20
		}

		c.text(25, y, w.Type)
		c.text(65, y, truncate(w.Property, 25))
		c.text(120, y, format.Date(w.Date))
		c.text(160, y, format.Amount(w.Cost))
		y += 6
	}

	y += 3
	c.drawColor(colorPrimary)
	c.Line(140, y, 185, y)
	y += 5
	c.font("B", 10)
	c.text(110, y, "TOTAL DÉPENSES")
	c.textRight(marginRight, y, format.Amount(d.TotalExpenses))

	y += 15
	if y > 230 {
		c.AddPage()
		y = 20
	}

	c.font("B", 14)
	c.textColor(colorAccent)
	c.text(20, y, "CALCUL DU REVENU IMPOSABLE")
	y += 10

	c.font("", 10)
	c.textColor(colorPrimary)
	c.text(25, y, "Revenus locatifs bruts")
	c.textRight(marginRight, y, format.Amount(d.AnnualRevenue))
	y += 8
	c.textColor(colorRed)
	c.text(25, y, "(-) Dépenses déductibles")
	c.textRight(marginRight, y, "- "+format.Amount(d.TotalExpenses))
	y += 8
	c.drawColor(colorPrimary)
	c.Line(25, y, 185, y)
	y += 6

	c.fillColor(colorPrimary)
	c.Rect(25, y-3, 160, 10, "F")
	c.textColor(colorWhite)
	c.font("B", 11)
	c.text(30, y+4, "REVENU IMPOSABLE")
	c.textRight(180, y+4, format.Amount(d.TaxableIncome))

	return c.artifact(fmt.Sprintf("Kushtati-Declaration-Fiscale-%d.pdf", d.Year))
}
