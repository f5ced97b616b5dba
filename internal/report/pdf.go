// Package report renders the donor collection report as a PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/seva-sangam/donation-services/internal/ledger"
	"github.com/seva-sangam/donation-services/models"
)

// column widths for the donor table, in mm
var colWidths = []float64{60, 30, 30, 30, 30}

var colHeaders = []string{"Donor", "Amount", "Paid", "Balance", "Status"}

// DonorReport writes a PDF listing every donator with per-donor totals and a
// grand total. Each donor's status is classified from their aggregate paid
// and balance figures, not from any single donation.
func DonorReport(w io.Writer, title string, donators []models.Donator, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range colHeaders {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var grand ledger.Totals
	for _, donator := range donators {
		totals := ledger.Aggregate(donator.Donations)
		grand.TotalAmount += totals.TotalAmount
		grand.TotalPaid += totals.TotalPaid
		grand.TotalBalance += totals.TotalBalance

		status := ledger.ClassifyTotals(totals.TotalPaid, totals.TotalBalance)
		cells := []string{
			donator.Name,
			formatRupees(totals.TotalAmount),
			formatRupees(totals.TotalPaid),
			formatRupees(totals.TotalBalance),
			status,
		}
		for i, c := range cells {
			align := "R"
			if i == 0 || i == len(cells)-1 {
				align = "L"
			}
			pdf.CellFormat(colWidths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(colWidths[0], 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, formatRupees(grand.TotalAmount), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, formatRupees(grand.TotalPaid), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[3], 8, formatRupees(grand.TotalBalance), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[4], 8, "", "1", 1, "L", true, 0, "")

	return pdf.Output(w)
}

// formatRupees renders an integer rupee amount with the Rs. prefix. Core
// fonts cannot render the rupee sign, so the plain prefix is used instead.
func formatRupees(v int64) string {
	return fmt.Sprintf("Rs. %d", v)
}
