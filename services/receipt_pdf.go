package services

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/utils"
)

const receiptFontFamily = "receipt"

// ReceiptPDF renders receipts on A6 paper. Thai text needs a TrueType font
// with Thai glyphs; without one the core Courier font is used and
// unsupported characters are replaced.
type ReceiptPDF struct {
	FontPath string
}

func NewReceiptPDF(fontPath string) *ReceiptPDF {
	return &ReceiptPDF{FontPath: fontPath}
}

func (rp *ReceiptPDF) Render(w io.Writer, r engine.Receipt) error {
	pdf := fpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(6, 6, 6)
	pdf.SetAutoPageBreak(true, 6)

	family := "Courier"
	tr := func(s string) string { return s }
	if rp.FontPath != "" {
		pdf.AddUTF8Font(receiptFontFamily, "", rp.FontPath)
		family = receiptFontFamily
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	body := width - left - right

	center := func(size float64, text string) {
		pdf.SetFont(family, "", size)
		pdf.CellFormat(body, size*0.5, tr(text), "", 1, "C", false, 0, "")
	}
	row := func(label, value string) {
		pdf.CellFormat(body*0.6, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(body*0.4, 5, tr(value), "", 1, "R", false, 0, "")
	}
	rule := func() {
		y := pdf.GetY() + 1
		pdf.Line(left, y, width-right, y)
		pdf.Ln(2)
	}

	center(12, r.StoreName)
	if r.Address != "" {
		center(8, r.Address)
	}
	center(9, r.Title)
	pdf.Ln(1)

	pdf.SetFont(family, "", 8)
	row("Order: "+r.OrderID, r.Date.Format("02/01/2006 15:04"))
	rule()
	for _, l := range r.Lines {
		row(fmt.Sprintf("%s x%d", l.Name, l.Quantity), utils.FormatCurrencyTHB(l.Amount))
	}
	rule()
	row("Subtotal", utils.FormatCurrencyTHB(r.Subtotal))
	row(r.TaxLabel, utils.FormatCurrencyTHB(r.Tax))
	pdf.SetFont(family, "", 10)
	row("Total", utils.FormatCurrencyTHB(r.Total))
	pdf.SetFont(family, "", 8)
	row("Payment", r.PaymentMethod)
	if r.Cash {
		row("Received", utils.FormatCurrencyTHB(r.Received))
		row("Change", utils.FormatCurrencyTHB(r.Change))
	}
	pdf.Ln(3)
	center(9, r.Footer)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render receipt %s: %w", r.OrderID, err)
	}
	return pdf.Output(w)
}
