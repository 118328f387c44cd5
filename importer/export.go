package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fincontrol/api/models"
)

var exportHeader = []string{"Date", "Type", "Category", "Description", "Value"}

// WriteTransactions streams the user's transactions as a workbook using the
// same column layout the importer accepts, so an export re-imports cleanly.
func WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(TransactionsSheet); err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("error dropping default sheet: %v", err)
	}

	for i, label := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(TransactionsSheet, cell, label); err != nil {
			return fmt.Errorf("error writing header: %v", err)
		}
	}

	for i, t := range transactions {
		row := i + 2
		values := []any{
			t.Date.Format("2006-01-02"),
			exportType(t.Type),
			t.Category,
			t.Description,
			t.Value.StringFixed(2),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(TransactionsSheet, cell, v); err != nil {
				return fmt.Errorf("error writing row %d: %v", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %v", err)
	}
	return nil
}

func exportType(t models.TransactionType) string {
	if t == models.TransactionIncome {
		return "Income"
	}
	return "Expense"
}
