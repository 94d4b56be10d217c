package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/models"
)

// Sheet names of the workbook.
const (
	ExpensesSheet = "Expenses"
	WishlistSheet = "Wishlist"
)

// ContentTypeXLSX is the MIME type of the workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes a workbook with the ledger on one sheet and the
// wishlist fund on another.
func WriteXLSX(w io.Writer, expenses []models.Expense, wishlist []models.WishlistItem) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the ledger so the workbook opens on it.
	if err := f.SetSheetName(f.GetSheetName(0), ExpensesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	header := make([]any, len(expenseHeader))
	for i, h := range expenseHeader {
		header[i] = h
	}
	if err := setRow(f, ExpensesSheet, 1, header); err != nil {
		return err
	}
	for i, e := range expenses {
		row := []any{e.Description, calculator.Round2(e.Amount), string(e.Tag), e.DueDate}
		if err := setRow(f, ExpensesSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(WishlistSheet); err != nil {
		return fmt.Errorf("failed to create wishlist sheet: %w", err)
	}
	if err := setRow(f, WishlistSheet, 1, []any{"Name", "Target", "Saved", "Progress", "Contributions"}); err != nil {
		return err
	}
	for i, item := range wishlist {
		row := []any{
			item.Name,
			calculator.Round2(item.TargetAmount),
			calculator.Round2(item.CurrentAmount),
			calculator.Round2(item.Progress()),
			len(item.Contributors),
		}
		if err := setRow(f, WishlistSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ExpensesSheet, "A", "A", 30); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(WishlistSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
