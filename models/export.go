package models

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exportHeadings = []string{"Date", "Description", "Category", "Type", "Total Amount", "Tax Amount", "Bank Balance"}

// exportRows pages through the filtered listing so exports see the same rows
// and running balances the listing endpoint serves.
func exportRows(ctx context.Context, filter *CashbookEntryFilter) ([]*CashbookEntryWithBalance, map[int]string, error) {
	const pageSize = 500

	var all []*CashbookEntryWithBalance
	for offset := 0; ; offset += pageSize {
		page, err := ListCashbookEntries(ctx, filter, offset, pageSize)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, page.Entries...)
		if int64(offset+pageSize) >= page.TotalCount {
			break
		}
	}

	categories, err := ListTransactionCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	categoryNames := make(map[int]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	return all, categoryNames, nil
}

func (e *CashbookEntryWithBalance) exportCells(categoryNames map[int]string) []string {
	categoryName := ""
	if e.CategoryId != nil {
		categoryName = categoryNames[*e.CategoryId]
	}
	taxAmount := ""
	if e.TaxAmount != nil {
		taxAmount = e.TaxAmount.StringFixed(2)
	}
	balance := ""
	if e.BankBalance != nil {
		balance = e.BankBalance.StringFixed(2)
	}
	return []string{
		e.EntryDate.Format("2006-01-02"),
		e.Description,
		categoryName,
		string(e.EntryType),
		e.TotalAmount.StringFixed(2),
		taxAmount,
		balance,
	}
}

// ExportCashbookXlsx writes the filtered listing as an XLSX workbook.
func ExportCashbookXlsx(ctx context.Context, filter *CashbookEntryFilter, w io.Writer) error {
	rows, categoryNames, err := exportRows(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Cashbook"
	f.SetSheetName("Sheet1", sheetName)

	for i, h := range exportHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for rowNo, row := range rows {
		for i, value := range row.exportCells(categoryNames) {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNo+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportCashbookCsv writes the filtered listing as CSV.
func ExportCashbookCsv(ctx context.Context, filter *CashbookEntryFilter, w io.Writer) error {
	rows, categoryNames, err := exportRows(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeadings); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.exportCells(categoryNames)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
