// Package receipt renders a one-page shipment receipt for a tracked order.
package receipt

import (
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/views"
)

// compress is switched off by tests that inspect the page content.
var compress = true

// Generate writes the receipt PDF for o to w. The core fonts are cp1252, so
// text is translated from UTF-8; runes outside that code page print as dots.
func Generate(o models.Order, issued time.Time, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetTitle("CBL Dispatch receipt "+o.ID, true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// header bar
	pdf.SetFillColor(99, 102, 241)
	pdf.Rect(marginL, marginT, contentW, 12, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(marginL+3, marginT+2)
	pdf.CellFormat(contentW/2, 8, "CBL DISPATCH", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2-6, 8, "Shipment receipt", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 18
	pdf.SetXY(marginL, y)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, tr("Order #"+o.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Placed on "+views.FormatDate(o.CreatedAt)+"   Issued "+issued.Format("January 2, 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, contentW, "ORDER")
	row(pdf, contentW, "Product", tr(o.ProductName))
	row(pdf, contentW, "Quantity", strconv.Itoa(o.Quantity))
	row(pdf, contentW, "Unit price", views.Money(o.Price))
	row(pdf, contentW, "Total", "$"+views.LineTotal(o).StringFixed(2))
	pdf.Ln(3)

	section(pdf, contentW, "SHIPPING")
	row(pdf, contentW, "Destination", tr(o.Destination))
	row(pdf, contentW, "Status", tr(string(o.Status)))
	if o.Status.NeedsReason() && o.ReasonText() != "" {
		row(pdf, contentW, "Reason", tr(o.ReasonText()))
	}
	if o.TimeShipped != nil {
		row(pdf, contentW, "Time shipped", tr(*o.TimeShipped))
	}
	if o.DateShipped != nil {
		row(pdf, contentW, "Date shipped", tr(views.FormatDate(*o.DateShipped)))
	}
	if o.ExpectedArrival != nil {
		row(pdf, contentW, "Expected arrival", tr(views.FormatDate(*o.ExpectedArrival)))
	}

	progress := views.TrackingProgress(o.Status)
	pdf.Ln(6)
	x, y := pdf.GetXY()
	pdf.SetFillColor(229, 231, 235)
	pdf.Rect(x, y, contentW, 3, "F")
	pdf.SetFillColor(99, 102, 241)
	pdf.Rect(x, y, contentW*float64(progress.Percent)/100, 3, "F")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Progress "+strconv.Itoa(progress.Percent)+"%", "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func section(pdf *fpdf.Fpdf, w float64, title string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(w, 6, title, "1", 1, "L", true, 0, "")
}

func row(pdf *fpdf.Fpdf, w float64, label, value string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(w*0.35, 6, label, "LB", 0, "L", false, 0, "")
	pdf.CellFormat(w*0.65, 6, value, "RB", 1, "L", false, 0, "")
}
