package models

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mapleledger/cashbook_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportDate marshals as a bare "YYYY-MM-DD" string in preview/confirm
// payloads.
type ImportDate time.Time

func (d ImportDate) Time() time.Time {
	return time.Time(d)
}

func (d ImportDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).Format("2006-01-02"))), nil
}

func (d *ImportDate) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		// tolerate full timestamps from clients that round-trip time.Time
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*d = ImportDate(t)
	return nil
}

// ParsedExcelRow is one candidate ledger row lifted out of a workbook. It is
// ephemeral: nothing is persisted until the row set is confirmed. A row with
// errors is shown in the preview so the user can fix the sheet, but is
// excluded from confirm.
type ParsedExcelRow struct {
	RowNumber    int              `json:"row_number"`
	SheetName    string           `json:"sheet_name"`
	Date         *ImportDate      `json:"date"`
	Description  string           `json:"description"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	CategoryName *string          `json:"category_name"`
	EntryType    EntryType        `json:"entry_type"`
	TaxAmount    *decimal.Decimal `json:"tax_amount"`
	Errors       []string         `json:"errors"`
}

type ImportPreview struct {
	Rows        []*ParsedExcelRow `json:"rows"`
	TotalRows   int               `json:"total_rows"`
	ValidRows   int               `json:"valid_rows"`
	ErrorRows   int               `json:"error_rows"`
	SheetsFound []string          `json:"sheets_found"`
}

/* sheet schemas */

// categoryVocabEntry binds a header fragment to a category and entry type.
// The slice order is the documented tie-break: when a header could match
// several keys, the first entry in the vocabulary wins.
type categoryVocabEntry struct {
	matchKey     string
	categoryName string
	entryType    EntryType
}

// sheetSchema declares how one sheet kind of the accountant template is laid
// out. New template variants are added here, not in the parse loop.
type sheetSchema struct {
	headerScanDepth    int
	headerScanWidth    int
	descriptionHeaders []string
	totalHeaders       []string
	taxHeaderContains  []string
	vocabulary         []categoryVocabEntry
	vocabularyMatch    MatchMode
	defaultEntryType   EntryType
	useDefaultTaxRate  bool
}

var cashBookSchema = sheetSchema{
	headerScanDepth:    15,
	headerScanWidth:    5,
	descriptionHeaders: []string{"transaction", "description"},
	totalHeaders:       []string{"total amount"},
	vocabulary: []categoryVocabEntry{
		// income columns are matched before expense columns
		{"sales", "Sales", EntryTypeIncome},
		{"other income", "Other Income", EntryTypeIncome},
		{"interest income", "Interest Income", EntryTypeIncome},
		{"advertising", "Advertising", EntryTypeExpense},
		{"bank charge", "Bank Charges", EntryTypeExpense},
		{"fuel", "Fuel", EntryTypeExpense},
		{"insurance", "Insurance", EntryTypeExpense},
		{"interest", "Interest", EntryTypeExpense},
		{"meals", "Meals & Entertainment", EntryTypeExpense},
		{"office", "Office Expenses", EntryTypeExpense},
		{"professional", "Professional Fees", EntryTypeExpense},
		{"rent", "Rent", EntryTypeExpense},
		{"repair", "Repairs & Maintenance", EntryTypeExpense},
		{"supplies", "Supplies", EntryTypeExpense},
		{"telephone", "Telephone", EntryTypeExpense},
		{"travel", "Travel", EntryTypeExpense},
		{"utilities", "Utilities", EntryTypeExpense},
		{"vehicle", "Vehicle", EntryTypeExpense},
		{"wages", "Wages", EntryTypeExpense},
		{"miscellaneous", "Miscellaneous", EntryTypeExpense},
	},
	vocabularyMatch:  MatchContains,
	defaultEntryType: EntryTypeExpense,
}

var creditCardSchema = sheetSchema{
	headerScanDepth:    10,
	headerScanWidth:    5,
	descriptionHeaders: []string{"description", "transaction"},
	totalHeaders:       []string{"total"},
	taxHeaderContains:  []string{"gst", "hst"},
	vocabulary: []categoryVocabEntry{
		{"advertising", "Advertising", EntryTypeExpense},
		{"fuel", "Fuel", EntryTypeExpense},
		{"insurance", "Insurance", EntryTypeExpense},
		{"interest", "Interest", EntryTypeExpense},
		{"meals", "Meals & Entertainment", EntryTypeExpense},
		{"office", "Office Expenses", EntryTypeExpense},
		{"repairs", "Repairs & Maintenance", EntryTypeExpense},
		{"supplies", "Supplies", EntryTypeExpense},
		{"telephone", "Telephone", EntryTypeExpense},
		{"travel", "Travel", EntryTypeExpense},
		{"utilities", "Utilities", EntryTypeExpense},
		{"vehicle", "Vehicle", EntryTypeExpense},
		{"miscellaneous", "Miscellaneous", EntryTypeExpense},
	},
	vocabularyMatch:  MatchExact,
	defaultEntryType: EntryTypeExpense,
	// card statements rarely carry a tax column; derive from the total
	useDefaultTaxRate: true,
}

// schemaForSheet picks a schema by sheet name, or nil for sheets that are not
// part of the template (those are ignored, not errors).
func schemaForSheet(sheetName string) *sheetSchema {
	name := strings.ToLower(sheetName)
	if strings.Contains(name, "cash") && strings.Contains(name, "book") {
		return &cashBookSchema
	}
	if strings.Contains(name, "credit") {
		return &creditCardSchema
	}
	return nil
}

// PreviewCashbookImport parses a workbook into candidate ledger rows without
// persisting anything. Only an unreadable workbook returns an error;
// template mismatches yield zero rows and malformed rows are reported inside
// the preview.
func PreviewCashbookImport(ctx context.Context, r io.Reader, defaultTaxRate decimal.Decimal) (*ImportPreview, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer f.Close()

	preview := &ImportPreview{
		Rows:        []*ParsedExcelRow{},
		SheetsFound: []string{},
	}
	for _, sheetName := range f.GetSheetList() {
		schema := schemaForSheet(sheetName)
		if schema == nil {
			continue
		}
		rows := parseSheet(f, sheetName, schema, defaultTaxRate)
		if len(rows) == 0 {
			continue
		}
		preview.Rows = append(preview.Rows, rows...)
		preview.SheetsFound = append(preview.SheetsFound, sheetName)
	}

	preview.TotalRows = len(preview.Rows)
	for _, row := range preview.Rows {
		if len(row.Errors) == 0 {
			preview.ValidRows++
		} else {
			preview.ErrorRows++
		}
	}
	return preview, nil
}

type boundCategoryColumn struct {
	col          int
	categoryName string
	entryType    EntryType
}

func parseSheet(f *excelize.File, sheetName string, schema *sheetSchema, defaultTaxRate decimal.Decimal) []*ParsedExcelRow {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil
	}

	headerRow := findHeaderRow(rows, schema)
	if headerRow < 0 {
		// no "date" header within the scan window: not this template
		return nil
	}

	dateCol, descCol, totalCol, taxCol := -1, -1, -1, -1
	var categoryCols []boundCategoryColumn

	for col, raw := range rows[headerRow] {
		header := strings.ToLower(strings.TrimSpace(raw))
		if header == "" {
			continue
		}
		if dateCol < 0 && strings.Contains(header, "date") {
			dateCol = col
			continue
		}
		if descCol < 0 && containsExact(schema.descriptionHeaders, header) {
			descCol = col
			continue
		}
		if totalCol < 0 && containsExact(schema.totalHeaders, header) {
			totalCol = col
			continue
		}
		if taxCol < 0 && containsAny(schema.taxHeaderContains, header) {
			taxCol = col
			continue
		}
		for _, vocab := range schema.vocabulary {
			matched := false
			switch schema.vocabularyMatch {
			case MatchContains:
				matched = strings.Contains(header, vocab.matchKey)
			case MatchExact:
				matched = header == vocab.matchKey
			}
			if matched {
				categoryCols = append(categoryCols, boundCategoryColumn{
					col:          col,
					categoryName: vocab.categoryName,
					entryType:    vocab.entryType,
				})
				break
			}
		}
	}

	if dateCol < 0 || totalCol < 0 {
		return nil
	}

	var parsed []*ParsedExcelRow
	var currentDate *time.Time

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		rowNumber := i + 1

		// dates are stated once per day; blank cells carry the last one forward
		if d := parseExcelDate(cellAt(row, dateCol)); d != nil {
			currentDate = d
		}

		// blank or zero totals are noise rows (subtotals, spacing), not data
		total := utils.ParseAmount(cellAt(row, totalCol))
		if total == nil {
			continue
		}

		description := strings.TrimSpace(cellAt(row, descCol))

		out := &ParsedExcelRow{
			RowNumber:   rowNumber,
			SheetName:   sheetName,
			Description: description,
			TotalAmount: *total,
			EntryType:   schema.defaultEntryType,
		}
		if currentDate != nil {
			d := ImportDate(*currentDate)
			out.Date = &d
		}

		// first non-zero category column (left-to-right) wins
		for _, bound := range categoryCols {
			if amount := utils.ParseAmount(cellAt(row, bound.col)); amount != nil {
				name := bound.categoryName
				out.CategoryName = &name
				out.EntryType = bound.entryType
				break
			}
		}

		if taxCol >= 0 {
			out.TaxAmount = utils.ParseAmount(cellAt(row, taxCol))
		}
		if out.TaxAmount == nil && schema.useDefaultTaxRate && defaultTaxRate.GreaterThan(decimal.Zero) {
			tax := CalculateTax(*total, defaultTaxRate)
			out.TaxAmount = &tax
		}

		if out.Date == nil {
			out.Errors = append(out.Errors, "missing date")
		}
		if description == "" {
			out.Errors = append(out.Errors, "missing description")
			out.Description = fmt.Sprintf("Row %d", rowNumber)
		}

		parsed = append(parsed, out)
	}

	return parsed
}

// findHeaderRow scans the top-left corner of the sheet for a cell containing
// "date"; that row is the header row. Returns -1 when the sheet does not
// look like this template.
func findHeaderRow(rows [][]string, schema *sheetSchema) int {
	depth := min(len(rows), schema.headerScanDepth)
	for i := 0; i < depth; i++ {
		width := min(len(rows[i]), schema.headerScanWidth)
		for j := 0; j < width; j++ {
			cell := strings.ToLower(strings.TrimSpace(rows[i][j]))
			if strings.Contains(cell, "date") {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func containsExact(headers []string, header string) bool {
	for _, h := range headers {
		if h == header {
			return true
		}
	}
	return false
}

func containsAny(fragments []string, header string) bool {
	for _, fragment := range fragments {
		if strings.Contains(header, fragment) {
			return true
		}
	}
	return false
}

/* date parsing */

var ordinalSuffixRe = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"1/2/06",
	"01-02-06",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2-Jan-06",
}

var longMonthLayouts = []string{
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// parseExcelDate turns a formatted cell value into a date. It tries the
// layout list in order, then strips ordinal suffixes ("19th July 2023") and
// retries the month-name layouts, then falls back to interpreting the cell
// as an Excel serial number. Returns nil when nothing matches; a missing
// date only becomes a row error if no earlier date carries forward.
func parseExcelDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}

	stripped := ordinalSuffixRe.ReplaceAllString(value, "$1")
	if stripped != value {
		for _, layout := range longMonthLayouts {
			if t, err := time.Parse(layout, stripped); err == nil {
				return &t
			}
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}
