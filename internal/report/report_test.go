package report

import (
	"bytes"
	"encoding/csv"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/cosmocash/internal/models"
)

func testExpenses() []models.Expense {
	return []models.Expense{
		{ID: "1", Description: "Rent", Amount: 1200, Tag: models.TagShared, DueDate: "2026-11-01"},
		{ID: "2", Description: `Pizza, "extra" cheese`, Amount: 18.5, Tag: models.TagPersonal, DueDate: "2026-10-12"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testExpenses()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "Description,Amount,Tag,DueDate\n" +
		"Rent,1200.00,Shared,2026-11-01\n" +
		"\"Pizza, \"\"extra\"\" cheese\",18.50,Personal,2026-10-12\n"
	if got := buf.String(); got != want {
		t.Errorf("Unexpected CSV\n got: %q\nwant: %q", got, want)
	}

	// Reading it back yields the original fields.
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse exported CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[2][0] != `Pizza, "extra" cheese` {
		t.Errorf("Description did not survive quoting: %q", records[2][0])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if got := buf.String(); got != "Description,Amount,Tag,DueDate\n" {
		t.Errorf("Expected header only, got %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	wishlist := []models.WishlistItem{{
		ID: "w1", Name: "Couch", TargetAmount: 400, CurrentAmount: 100,
		Contributors: []models.WishlistContribution{{RoommateID: "a", Amount: 100}},
	}}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, testExpenses(), wishlist); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !slices.Equal(got, []string{ExpensesSheet, WishlistSheet}) {
		t.Errorf("Expected sheets %v, got %v", []string{ExpensesSheet, WishlistSheet}, got)
	}

	rows, err := f.GetRows(ExpensesSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if !slices.Equal(rows[0], expenseHeader) {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[2][0] != `Pizza, "extra" cheese` || rows[2][2] != "Personal" {
		t.Errorf("Unexpected row %v", rows[2])
	}

	rows, err = f.GetRows(WishlistSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Couch" || rows[1][3] != "25" {
		t.Errorf("Unexpected wishlist rows %v", rows)
	}
}
