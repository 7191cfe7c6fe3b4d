/**
 * @description
 * Renders a computed quote into a one-page PDF document. Layout only —
 * all amounts and labels come from the quote formatter, so this package
 * carries no pricing logic.
 */
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/weblifystudio/quote-service/internal/quote"
)

// Renderer produces quote PDFs.
type Renderer struct {
	studioName string
}

// NewRenderer creates a renderer branded with the studio name.
func NewRenderer(studioName string) *Renderer {
	return &Renderer{studioName: studioName}
}

// RenderQuote fills the fixed quote template with the contact details and
// the quote breakdown.
func (r *Renderer) RenderQuote(contactName, contactEmail string, result *quote.Result) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(0, 10, tr(r.studioName))
	doc.Ln(12)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, tr(fmt.Sprintf("Quote issued %s", result.IssuedAt.Format("2 January 2006"))))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("Prepared for %s (%s)", contactName, contactEmail)))
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(128, 128, 128)
	doc.Cell(0, 5, tr(fmt.Sprintf("Price list %s", result.CatalogVersion)))
	doc.SetTextColor(0, 0, 0)
	doc.Ln(12)

	// Line items
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(140, 8, "Item", "B", 0, "L", false, 0, "")
	doc.CellFormat(40, 8, "Amount", "B", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, item := range quote.LineItems(result) {
		doc.CellFormat(140, 8, tr(item.Label), "", 0, "L", false, 0, "")
		doc.CellFormat(40, 8, tr(formatAmount(item.Amount)), "", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(140, 10, "Total", "T", 0, "L", false, 0, "")
	doc.CellFormat(40, 10, tr(formatAmount(result.TotalPrice)), "T", 1, "R", false, 0, "")

	// Recurring plans are billed monthly, outside the one-time total.
	if recurring := quote.RecurringItems(result); len(recurring) > 0 {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(0, 8, "Monthly plans")
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 11)
		for _, item := range recurring {
			doc.CellFormat(140, 8, tr(item.Label), "", 0, "L", false, 0, "")
			doc.CellFormat(40, 8, tr(formatAmount(item.Amount)+" / month"), "", 1, "R", false, 0, "")
		}
	}

	// Delivery estimate
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 11)
	if result.ExpressDelivery && result.ExpressDeliveryDays != nil {
		doc.Cell(0, 6, tr(fmt.Sprintf("Express delivery in approximately %d working days.", *result.ExpressDeliveryDays)))
	} else {
		doc.Cell(0, 6, tr(fmt.Sprintf("Delivery in approximately %d working days.", result.EstimatedDeliveryDays)))
	}
	doc.Ln(10)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(128, 128, 128)
	doc.Cell(0, 5, tr("This quote is valid for 30 days from the issue date."))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(amount int64) string {
	return fmt.Sprintf("%d €", amount)
}
