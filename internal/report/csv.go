// Package report renders the expense ledger for download.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/models"
)

// File names offered to the browser.
const (
	CSVFilename  = "cosmocash_expenses.csv"
	XLSXFilename = "cosmocash_expenses.xlsx"
)

var expenseHeader = []string{"Description", "Amount", "Tag", "DueDate"}

// WriteCSV writes one row per expense after a header row. Fields containing
// commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{e.Description, calculator.FormatAmount(e.Amount), string(e.Tag), e.DueDate}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for expense %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
