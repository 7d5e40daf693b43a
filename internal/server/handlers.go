package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mvaidya/cheque-tracker/internal/analytics"
	"github.com/mvaidya/cheque-tracker/internal/cheque"
)

// topChartEntries bounds the pie and bar charts to the largest entries
const topChartEntries = 5

// handleUploadCheque accepts one cheque document and runs the ingestion
// pipeline on it. A multi-page PDF may commit some cheques before a
// later page fails; the error response reports how many were processed.
func (s *Server) handleUploadCheque(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 50MB to handle high-resolution scans)
	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Error parsing form",
		})
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "No file provided",
		})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Error reading file",
		})
		return
	}

	// Determine content type from the part header, falling back to the
	// file extension
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".png":
			contentType = "image/png"
		case ".pdf":
			contentType = "application/pdf"
		}
	}

	switch contentType {
	case "application/pdf", "image/jpeg", "image/png":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unsupported file type, expected PDF, JPEG or PNG",
		})
		return
	}

	records, err := s.service.ProcessUpload(header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error processing cheque upload", "error", err, "filename", header.Filename)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     err.Error(),
			"processed": len(records),
		})
		return
	}

	writeJSON(w, http.StatusCreated, records)
}

// handleListCheques returns the stored cheques, optionally filtered and
// sorted by query parameters. A storage failure degrades to an empty
// list rather than an error.
func (s *Server) handleListCheques(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListCheques()
	if err != nil {
		slog.Error("Error listing cheques", "error", err)
		records = nil
	}

	q := r.URL.Query()
	records = analytics.FilterRecords(records, q.Get("filter_column"), q.Get("filter"))
	if col := q.Get("sort"); col != "" {
		analytics.SortRecords(records, col, q.Get("order") == "desc")
	}

	if records == nil {
		records = []*cheque.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAnalytics returns the summary aggregates over all cheques
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	view := s.buildView()
	writeJSON(w, http.StatusOK, map[string]any{
		"total_cheques":  view.TotalCheques,
		"distinct_banks": view.DistinctBanks,
		"total_amount":   view.TotalAmount,
		"no_data":        view.NoData,
		"warnings":       view.Warnings,
	})
}

// handleChart renders one of the named charts as PNG
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(r.PathValue("name"), ".png")

	view := s.buildView()
	if view.NoData {
		corsError(w, "no data available", http.StatusNotFound)
		return
	}

	var (
		img []byte
		err error
	)
	switch name {
	case "pie":
		img, err = analytics.PieChart(analytics.TopBanksByAmount(view, topChartEntries))
	case "bar":
		img, err = analytics.BarChart(analytics.TopCheques(view, topChartEntries))
	case "scatter":
		img, err = analytics.ScatterChart(view)
	default:
		corsError(w, "unknown chart", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Error rendering chart", "chart", name, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// handleExportCSV returns the full cheque table as CSV
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	view := s.buildView()
	data, err := analytics.CSVBytes(s.service.ColumnNames(), view.Records)
	if err != nil {
		slog.Error("Error exporting CSV", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cheques.csv"`)
	w.Write(data)
}

// handleExportExcel returns the full cheque table as a spreadsheet
func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	view := s.buildView()
	data, err := analytics.ExcelBytes(s.service.ColumnNames(), view.Records)
	if err != nil {
		slog.Error("Error exporting spreadsheet", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="cheques.xlsx"`)
	w.Write(data)
}

// handleExportReport returns the composite PDF report: summary, table
// and charts. Charts that cannot render are left out of the report.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	view := s.buildView()

	var charts [][]byte
	if !view.NoData {
		renders := []struct {
			name string
			fn   func() ([]byte, error)
		}{
			{"pie", func() ([]byte, error) {
				return analytics.PieChart(analytics.TopBanksByAmount(view, topChartEntries))
			}},
			{"bar", func() ([]byte, error) {
				return analytics.BarChart(analytics.TopCheques(view, topChartEntries))
			}},
			{"scatter", func() ([]byte, error) {
				return analytics.ScatterChart(view)
			}},
		}
		for _, render := range renders {
			img, err := render.fn()
			if err != nil {
				slog.Error("Error rendering report chart", "chart", render.name, "error", err)
				continue
			}
			charts = append(charts, img)
		}
	}

	data, err := analytics.ReportPDF(s.service.ColumnNames(), view, charts)
	if err != nil {
		slog.Error("Error exporting report", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
	w.Write(data)
}

// buildView fetches all cheques and derives the analytics view. Fetch
// failures degrade to a no-data view.
func (s *Server) buildView() *analytics.View {
	records, err := s.service.ListCheques()
	if err != nil {
		slog.Error("Error listing cheques for analytics", "error", err)
		records = nil
	}
	return s.engine.Build(records)
}

// writeJSON writes a JSON response with CORS headers set
func writeJSON(w http.ResponseWriter, code int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
