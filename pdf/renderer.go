package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"CotizaLab/models"
	"CotizaLab/utils"
)

// quotation table geometry, in mm
const (
	colCode  = 18
	colName  = 52
	colPrice = 30

	nameBudget   = 37
	nameTruncate = 35
)

// Renderer draws reprint documents with the injected letterhead. Safe
// for concurrent use; each Render builds its own fpdf instance.
type Renderer struct {
	letterhead Letterhead
	location   *time.Location
	now        func() time.Time
}

func NewRenderer(letterhead Letterhead) *Renderer {
	location, err := time.LoadLocation(letterhead.TimeZone)
	if err != nil {
		location = time.UTC
	}
	return &Renderer{letterhead: letterhead, location: location, now: time.Now}
}

// Render serializes one priced view into a complete PDF byte buffer.
// Text passes through the cp1252 translator, so characters outside the
// core-font encoding are substituted instead of failing the render.
func (r *Renderer) Render(view *models.PricedView) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetAutoPageBreak(true, 20)
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetTextColor(0, 0, 0)
		doc.SetFont("Arial", "I", 7)
		stamp := r.now().In(r.location).Format("02/01/2006 15:04")
		doc.CellFormat(0, 5, tr(fmt.Sprintf("Página %d - Reimpreso el %s", doc.PageNo(), stamp)),
			"", 0, "C", false, 0, "")
	})
	doc.AddPage()

	r.drawHeader(doc, tr, view)
	r.drawPatientBlock(doc, tr, view)
	if view.Kind == models.KindOrder {
		r.drawOrderTable(doc, tr, view)
	} else {
		r.drawQuotationTable(doc, tr, view)
		r.drawNotes(doc, tr, view)
	}

	var buffer bytes.Buffer
	if err := doc.Output(&buffer); err != nil {
		return nil, errors.Wrap(err, "failed to serialize reprint document")
	}
	return buffer.Bytes(), nil
}

func (r *Renderer) drawHeader(doc *fpdf.Fpdf, tr func(string) string, view *models.PricedView) {
	if r.letterhead.LogoPath != "" {
		if _, err := os.Stat(r.letterhead.LogoPath); err == nil {
			doc.ImageOptions(r.letterhead.LogoPath, 10, 8, 0, 12, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	accent := r.letterhead.Accent
	doc.SetFont("Arial", "B", 10)
	doc.SetTextColor(accent.R, accent.G, accent.B)
	reference := "FOLIO REIMPRESO: " + view.Metadata.Identifier
	if view.Kind == models.KindOrder {
		reference = "ORDEN N° " + view.Metadata.Identifier
	}
	doc.CellFormat(0, 5, tr(reference), "", 1, "R", false, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Arial", "", 8)
	doc.CellFormat(0, 4, tr(fmt.Sprintf("%s - %s - %s",
		r.letterhead.ClinicName, r.letterhead.Address, r.letterhead.Phone)), "", 1, "R", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Arial", "B", 14)
	doc.CellFormat(0, 10, tr(view.Kind.Title()), "", 1, "C", false, 0, "")
	doc.Ln(3)
}

func (r *Renderer) drawPatientBlock(doc *fpdf.Fpdf, tr func(string) string, view *models.PricedView) {
	meta := view.Metadata
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, tr("Paciente: "+meta.PatientName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(meta.DocumentIDLabel+": "+meta.DocumentID), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr("Fecha Original: "+meta.IssuedAt.Format("02/01/2006")), "", 1, "L", false, 0, "")
	doc.Ln(6)
}

func (r *Renderer) drawQuotationTable(doc *fpdf.Fpdf, tr func(string) string, view *models.PricedView) {
	accent := r.letterhead.Accent

	// grouped band above the price columns
	doc.SetFillColor(accent.R, accent.G, accent.B)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Arial", "B", 9)
	doc.CellFormat(colCode, 10, "", "", 0, "", false, 0, "")
	doc.CellFormat(colName, 10, "", "", 0, "", false, 0, "")
	doc.CellFormat(2*colPrice, 10, tr("Bono Fonasa"), "1", 0, "C", true, 0, "")
	doc.CellFormat(2*colPrice, 10, tr("Arancel particular"), "1", 1, "C", true, 0, "")

	doc.SetFont("Arial", "B", 7)
	doc.CellFormat(colCode, 10, tr("Código"), "1", 0, "C", true, 0, "")
	doc.CellFormat(colName, 10, " Nombre", "1", 0, "L", true, 0, "")
	doc.CellFormat(colPrice, 10, "Valor Bono", "1", 0, "C", true, 0, "")
	doc.CellFormat(colPrice, 10, "Valor a pagar(*)", "1", 0, "C", true, 0, "")
	doc.CellFormat(colPrice, 10, "Valor general", "1", 0, "C", true, 0, "")
	doc.CellFormat(colPrice, 10, "Valor preferencial", "1", 1, "C", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Arial", "", 7)
	for _, row := range view.Rows {
		doc.CellFormat(colCode, 8, tr(row.Code), "1", 0, "C", false, 0, "")
		doc.CellFormat(colName, 8, tr(" "+truncateName(row.Name)), "1", 0, "L", false, 0, "")
		doc.CellFormat(colPrice, 8, utils.FormatCLP(row.BenefitValue), "1", 0, "R", false, 0, "")
		doc.CellFormat(colPrice, 8, utils.FormatCLP(row.CopayValue), "1", 0, "R", false, 0, "")
		doc.CellFormat(colPrice, 8, utils.FormatCLP(row.GeneralPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(colPrice, 8, utils.FormatCLP(row.PreferentialPrice), "1", 1, "R", false, 0, "")
	}

	if view.Totals != nil {
		doc.SetFont("Arial", "B", 7)
		doc.SetFillColor(240, 240, 240)
		doc.CellFormat(colCode+colName, 10, " TOTALES REIMPRESOS", "1", 0, "L", true, 0, "")
		doc.CellFormat(colPrice, 10, utils.FormatCLP(view.Totals.Benefit), "1", 0, "R", true, 0, "")
		doc.CellFormat(colPrice, 10, utils.FormatCLP(view.Totals.Copay), "1", 0, "R", true, 0, "")
		doc.CellFormat(colPrice, 10, utils.FormatCLP(view.Totals.General), "1", 0, "R", true, 0, "")
		doc.CellFormat(colPrice, 10, utils.FormatCLP(view.Totals.Preferential), "1", 1, "R", true, 0, "")
	}
}

func (r *Renderer) drawOrderTable(doc *fpdf.Fpdf, tr func(string) string, view *models.PricedView) {
	accent := r.letterhead.Accent

	doc.SetFillColor(accent.R, accent.G, accent.B)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Arial", "B", 8)
	doc.CellFormat(25, 10, tr("Código"), "1", 0, "C", true, 0, "")
	doc.CellFormat(145, 10, tr(" Prestación"), "1", 1, "L", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Arial", "", 8)
	for _, row := range view.Rows {
		doc.CellFormat(25, 8, tr(row.Code), "1", 0, "C", false, 0, "")
		doc.CellFormat(145, 8, tr(" "+row.Name), "1", 1, "L", false, 0, "")
	}
}

func (r *Renderer) drawNotes(doc *fpdf.Fpdf, tr func(string) string, view *models.PricedView) {
	if len(r.letterhead.Notes) == 0 {
		return
	}
	doc.Ln(10)
	doc.SetFont("Arial", "B", 8)
	doc.CellFormat(0, 5, tr("INFORMACIÓN IMPORTANTE:"), "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 7)
	notes := "- Folio: " + view.Metadata.Identifier
	for _, note := range r.letterhead.Notes {
		notes += "\n- " + note
	}
	doc.MultiCell(0, 4, tr(notes), "", "L", false)
}

// truncateName fits a prestation name into the quotation table's name
// column, marking the cut with an ellipsis.
func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > nameBudget {
		return string(runes[:nameTruncate]) + ".."
	}
	return name
}
