// Package document renders the PDF, spreadsheet and archive files offered for
// download to tenants and owners.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/lease"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeZIP  = "application/zip"
)

var ErrNotPaid = errors.New("receipt requested for an unpaid record")

// Artifact is a generated file ready to be served or written to disk.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Renderer produces documents for one tenant lease.
type Renderer struct {
	lease lease.Lease
	clock func() time.Time
}

func NewRenderer(l lease.Lease, clock func() time.Time) *Renderer {
	if clock == nil {
		clock = time.Now
	}

	return &Renderer{lease: l, clock: clock}
}

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{51, 65, 85}
	colorAccent    = rgb{245, 158, 11}
	colorAccentDim = rgb{217, 151, 6}
	colorLight     = rgb{241, 245, 249}
	colorStripe    = rgb{248, 250, 252}
	colorMuted     = rgb{100, 116, 139}
	colorRule      = rgb{226, 232, 240}
	colorGreen     = rgb{22, 163, 74}
	colorRed       = rgb{220, 38, 38}
	colorAmber     = rgb{234, 179, 8}
	colorWhite     = rgb{255, 255, 255}
)

const (
	pageWidth   = 210.0
	pageCenter  = pageWidth / 2
	marginLeft  = 15.0
	marginRight = 195.0
)

// canvas wraps fpdf with the house style. Text goes through the cp1252
// translator used by the core fonts.
type canvas struct {
	*fpdf.Fpdf
	tr func(string) string
}

func newCanvas(title string, now time.Time) *canvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Kushtati Immo", false)
	pdf.SetCreationDate(now)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	return &canvas{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *canvas) font(style string, size float64) {
	c.SetFont("Helvetica", style, size)
}

func (c *canvas) textColor(col rgb) { c.SetTextColor(col.r, col.g, col.b) }
func (c *canvas) fillColor(col rgb) { c.SetFillColor(col.r, col.g, col.b) }
func (c *canvas) drawColor(col rgb) { c.SetDrawColor(col.r, col.g, col.b) }

func (c *canvas) text(x, y float64, s string) {
	c.Text(x, y, c.tr(format.Plain(s)))
}

func (c *canvas) textRight(x, y float64, s string) {
	s = c.tr(format.Plain(s))
	c.Text(x-c.GetStringWidth(s), y, s)
}

func (c *canvas) textCenter(x, y float64, s string) {
	s = c.tr(format.Plain(s))
	c.Text(x-c.GetStringWidth(s)/2, y, s)
}

func (c *canvas) panel(y, h float64, col rgb) {
	c.fillColor(col)
	c.RoundedRect(marginLeft, y, marginRight-marginLeft, h, 3, "1234", "F")
}

// banner draws the accent band with the K logo, the brand name and the
// document title with up to two reference lines on the right.
func (c *canvas) banner(title string, refs ...string) {
	c.fillColor(colorAccent)
	c.Rect(0, 0, pageWidth, 50, "F")

	const scale, x, y = 0.3, 15.0, 12.0

	c.SetLineWidth(2.5)
	c.drawColor(colorWhite)
	c.Line(x+25*scale, y+15*scale, x+25*scale, y+85*scale)
	c.drawColor(colorAccentDim)
	c.Line(x+25*scale, y+50*scale, x+65*scale, y+15*scale)
	c.Line(x+45*scale, y+32.5*scale, x+75*scale, y+85*scale)
	c.drawColor(colorWhite)
	c.Line(x+65*scale, y+15*scale, x+85*scale, y+15*scale)

	c.textColor(colorWhite)
	c.font("B", 32)
	c.text(45, 23, "KUSHTATI")
	c.font("", 16)
	c.text(45, 33, "Immo")

	c.font("B", 18)
	c.textRight(marginRight, 23, title)

	c.font("", 10)

	for i, ref := range refs {
		c.textRight(marginRight, 30+float64(i)*6, ref)
	}
}

// installFooter prints the agency footer on every page. When paged is set
// the last line carries "Page i/n".
func (c *canvas) installFooter(now time.Time, paged bool) {
	c.SetFooterFunc(func() {
		c.drawColor(colorRule)
		c.SetLineWidth(0.5)
		c.Line(marginLeft, 275, marginRight, 275)

		c.textColor(colorMuted)
		c.font("B", 8)
		c.textCenter(pageCenter, 281, "KUSHTATI IMMO")
		c.font("", 8)
		c.textCenter(pageCenter, 285, "Conakry, Guinée - Gestion Immobilière")
		c.textCenter(pageCenter, 289, "Email: ib362392@gmail.com | Tel: +224 623 93 63 13 | GitHub: kushtati")

		last := fmt.Sprintf("(c) %d Kushtati Immo - Document généré le %s", now.Year(), format.Date(now))
		if paged {
			last = fmt.Sprintf("(c) %d Kushtati Immo - Tous droits réservés - Page %d/{nb}", now.Year(), c.PageNo())
		}

		c.font("", 7)
		c.textCenter(pageCenter, 293, last)
	})
}

func (c *canvas) artifact(name string) (*Artifact, error) {
	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf %s: %w", name, err)
	}

	return &Artifact{Name: name, ContentType: ContentTypePDF, Data: buf.Bytes()}, nil
}

// dashed turns "Décembre 2024" into "Décembre-2024".
func dashed(s string) string {
	return strings.Join(strings.Fields(s), "-")
}
