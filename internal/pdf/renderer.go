// Package pdf lays out rent receipts as single page A4 documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"rentreceipt/pkg/types"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	margin     = 50.0
	markWidth  = 75.0
	markHeight = 40.0
	lineHeight = 15.0

	// footerOffset is the distance between the footer top and the bottom
	// margin.
	footerOffset = 50.0

	logoName = "institution-logo"
)

const (
	footerNotice = "Cette quittance annule tous les reçus qui auraient pu être établis précédemment en cas de paiement partiel " +
		"du montant du présent terme. Elle est à conserver pendant trois ans par le locataire (loi n° 89-462 du 6 juillet 1989 : art. 7-1)."
	footerReference = "Texte de référence : - loi du 6.7.89 : art. 21"
)

type Options struct {
	// Logo is a PNG printed as the institution mark. A drawn badge is used
	// when empty.
	Logo     []byte
	Currency string
}

type Renderer struct {
	logo     []byte
	currency string
	printer  *message.Printer

	Now func() time.Time
}

// NewRenderer validates the logo once so that Render cannot fail on it later.
func NewRenderer(opts Options) (*Renderer, error) {
	if len(opts.Logo) > 0 {
		probe := fpdf.New("P", "pt", "A4", "")
		probe.RegisterImageOptionsReader(logoName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(opts.Logo))
		if err := probe.Error(); err != nil {
			return nil, fmt.Errorf("invalid logo: %w", err)
		}
	}

	currency := opts.Currency
	if currency == "" {
		currency = "euros"
	}

	return &Renderer{
		logo:     opts.Logo,
		currency: currency,
		printer:  message.NewPrinter(language.French),
		Now:      time.Now,
	}, nil
}

// Render lays out data and returns the complete PDF. The buffer is only
// returned once the document has been fully written.
func (r *Renderer) Render(data *types.ReceiptData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("render receipt: no data")
	}

	doc := fpdf.New("P", "pt", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin+footerOffset+20)
	doc.SetTitle("Quittance de loyer "+data.Month, true)
	doc.SetSubject(data.ReceiptNumber, true)
	doc.SetAuthor(data.LandlordName, true)
	doc.SetCreator("rentreceipt", true)
	doc.SetCreationDate(r.Now())
	doc.SetFooterFunc(func() {
		doc.SetY(-(margin + footerOffset))
		doc.SetFont("Helvetica", "", 8)
		doc.MultiCell(0, 10, tr(footerNotice), "", "J", false)
		doc.Ln(4)
		doc.MultiCell(0, 10, tr(footerReference), "", "L", false)
	})

	doc.AddPage()

	r.drawMark(doc)
	doc.SetY(margin + markHeight + 10)

	doc.SetFont("Helvetica", "", 20)
	doc.CellFormat(0, 24, tr("Quittance de loyer"), "", 1, "C", false, 0, "")
	doc.Ln(lineHeight)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, lineHeight, tr("Quittance de loyer du mois de "+data.Month), "", 1, "C", false, 0, "")
	doc.Ln(2 * lineHeight)

	text(doc, tr, data.LandlordName, "L")
	text(doc, tr, data.LandlordAddress, "L")
	doc.Ln(lineHeight)

	text(doc, tr, data.TenantName, "R")
	text(doc, tr, data.TenantAddress, "R")
	doc.Ln(2 * lineHeight)

	text(doc, tr, fmt.Sprintf("Fait à %s, le %s", data.SignedAt, data.ReceiptDate), "R")
	doc.Ln(lineHeight)

	text(doc, tr, "Adresse de la location :", "L")
	text(doc, tr, data.RentalAddress, "L")
	doc.Ln(2 * lineHeight)

	declaration := fmt.Sprintf(
		"Je soussigné %s, propriétaire du logement désigné ci-dessus, "+
			"déclare avoir reçu de Monsieur/Madame %s, la somme de %s (%s €), "+
			"au titre du paiement du loyer et des charges pour la période de location du %s au %s "+
			"et lui en donne quittance, sous réserve de tous mes droits.",
		data.LandlordName, data.TenantName, data.RentAmountText, r.amount(data.RentAmount),
		data.RentalPeriodStart, data.RentalPeriodEnd,
	)
	text(doc, tr, declaration, "J")
	doc.Ln(2 * lineHeight)

	text(doc, tr, "Détail du règlement :", "L")
	doc.Ln(lineHeight / 2)

	labeled(doc, tr, "Loyer :", r.money(data.RentAmount))
	doc.Ln(lineHeight / 2)
	labeled(doc, tr, "Provision pour charges :", r.money(data.ChargesAmount))
	doc.Ln(lineHeight / 2)
	if data.EnergyContribution != nil {
		labeled(doc, tr, "Contribution aux économies d'énergie :", r.money(*data.EnergyContribution))
		doc.Ln(lineHeight / 2)
	}
	labeled(doc, tr, "Total :", r.money(data.TotalAmount))
	doc.Ln(lineHeight)

	labeled(doc, tr, "Date du paiement :", data.PaymentDate)
	doc.Ln(2 * lineHeight)

	text(doc, tr, "(Signature)", "R")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write receipt pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// drawMark places the institution mark in the top right corner.
func (r *Renderer) drawMark(doc *fpdf.Fpdf) {
	pageWidth, _ := doc.GetPageSize()
	_, top, right, _ := doc.GetMargins()
	x := pageWidth - right - markWidth

	if len(r.logo) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(r.logo))
		doc.ImageOptions(logoName, x, top, markWidth, 0, false, opts, 0, "")
		return
	}

	doc.SetFillColor(31, 64, 112)
	doc.Rect(x, top, markWidth, markHeight, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 9)
	doc.SetXY(x, top)
	doc.CellFormat(markWidth, markHeight, "QUITTANCE", "", 0, "CM", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

func text(doc *fpdf.Fpdf, tr func(string) string, s, align string) {
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, lineHeight, tr(s), "", align, false)
}

// labeled writes a bold label followed by a plain value on the same line.
func labeled(doc *fpdf.Fpdf, tr func(string) string, label, value string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.Write(lineHeight, tr(label))
	doc.SetFont("Helvetica", "", 12)
	doc.Write(lineHeight, tr(" "+value))
	doc.Ln(lineHeight)
}

func (r *Renderer) money(v float64) string {
	return r.amount(v) + " " + r.currency
}

// amount formats v with French separators. The core fonts have no narrow
// no-break space, so grouping uses a plain space.
func (r *Renderer) amount(v float64) string {
	s := r.printer.Sprintf("%.2f", v)
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}
