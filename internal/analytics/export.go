package analytics

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/mvaidya/cheque-tracker/internal/cheque"
)

// reportRowsPerPage is how many table rows fit on one report page.
const reportRowsPerPage = 20

// recordRow flattens a record into export cell values, in column order.
func recordRow(rec *cheque.Record) []string {
	return []string{
		rec.PayeeName, rec.ChequeDate, rec.ChequeNumber, rec.AccountNumber,
		rec.BankName, rec.Branch, rec.AmountInWords, rec.AmountInNumbers,
		rec.SignatureName, rec.MICRCode, rec.IFSCCode,
	}
}

// CSVBytes writes the full table as UTF-8 comma-delimited CSV with a
// header row.
func CSVBytes(columns []string, records []*cheque.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(recordRow(rec)); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// ExcelBytes writes the full table as a single-sheet spreadsheet.
func ExcelBytes(columns []string, records []*cheque.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for c, name := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, fmt.Errorf("locating header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}
	for r, rec := range records {
		for c, v := range recordRow(rec) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("locating cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportPDF builds the composite report: a summary page, the full table
// paginated every reportRowsPerPage rows, then one page per chart
// image.
func ReportPDF(columns []string, view *View, charts [][]byte) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Cheque Analytics Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total cheques: %d", view.TotalCheques), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Distinct banks: %d", view.DistinctBanks), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total amount: %.2f", view.TotalAmount), "", 1, "L", false, 0, "")

	colWidth := 270.0 / float64(len(columns))
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 7)
		for _, name := range columns {
			pdf.CellFormat(colWidth, 6, name, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 7)
	}

	pdf.AddPage()
	writeHeader()
	for i, rec := range view.Records {
		if i > 0 && i%reportRowsPerPage == 0 {
			pdf.AddPage()
			writeHeader()
		}
		for _, v := range recordRow(rec) {
			pdf.CellFormat(colWidth, 6, truncateCell(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range charts {
		name := fmt.Sprintf("chart-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		pdf.AddPage()
		pdf.ImageOptions(name, 30, 20, 220, 0, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateCell keeps table cells from spilling into their neighbors.
func truncateCell(s string) string {
	const max = 18
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
