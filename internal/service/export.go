package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/report"
)

// ExportHandler serves the ledger as a file download.
type ExportHandler struct {
	h *household.Household
}

// NewExportHandler creates an ExportHandler over h.
func NewExportHandler(h *household.Household) *ExportHandler {
	return &ExportHandler{h: h}
}

// CSV writes every expense in ledger order.
func (e *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, e.h.Snapshot().Expenses); err != nil {
		slog.Error("CSV export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	writeDownload(w, "text/csv; charset=utf-8", report.CSVFilename, buf.Bytes())
}

// XLSX writes the ledger and the wishlist as a workbook.
func (e *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	s := e.h.Snapshot()
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, s.Expenses, s.Wishlist); err != nil {
		slog.Error("XLSX export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	writeDownload(w, report.ContentTypeXLSX, report.XLSXFilename, buf.Bytes())
}

func writeDownload(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		slog.Warn("Export write interrupted", "file", filename, "error", err)
	}
}
