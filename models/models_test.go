package models_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/models"
	"github.com/mapleledger/cashbook_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The production schema uses mysql enum columns, which sqlite does not
// accept, so the test schema is spelled out by hand with text columns.
const testSchema = `
CREATE TABLE payment_accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	account_type TEXT NOT NULL DEFAULT 'bank',
	account_name TEXT NOT NULL,
	opening_balance NUMERIC DEFAULT 0,
	opening_balance_date DATETIME NOT NULL,
	default_tax_rate NUMERIC,
	is_default BOOLEAN NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE transaction_categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	category_type TEXT NOT NULL DEFAULT 'expense',
	is_system BOOLEAN NOT NULL DEFAULT 0,
	display_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE cashbook_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	payment_account_id INTEGER NOT NULL,
	entry_type TEXT NOT NULL,
	entry_date DATETIME NOT NULL,
	description TEXT,
	total_amount NUMERIC NOT NULL,
	tax_amount NUMERIC,
	tax_rate_used NUMERIC,
	tax_override BOOLEAN NOT NULL DEFAULT 0,
	category_id INTEGER,
	contact_id INTEGER,
	document_id INTEGER,
	source TEXT NOT NULL DEFAULT 'manual',
	source_id TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE UNIQUE INDEX idx_account_source ON cashbook_entries (payment_account_id, source_id);
CREATE TABLE accounting_periods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	is_closed BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME,
	UNIQUE (user_id, year, month)
);
`

func setupTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cashbook_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(testSchema).Error)
	config.SetDB(db)
}

func testContext() context.Context {
	return utils.SetUserIdInContext(context.Background(), 1)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func createTestAccount(t *testing.T, ctx context.Context, name string, taxRate *decimal.Decimal) *models.PaymentAccount {
	t.Helper()
	account, err := models.CreatePaymentAccount(ctx, &models.NewPaymentAccount{
		AccountType:        models.PaymentAccountTypeBank,
		AccountName:        name,
		OpeningBalance:     decimal.RequireFromString("1000.00"),
		OpeningBalanceDate: day(2023, time.January, 1),
		DefaultTaxRate:     taxRate,
	})
	require.NoError(t, err)
	return account
}

func importDate(year int, month time.Month, d int) *models.ImportDate {
	id := models.ImportDate(day(year, month, d))
	return &id
}

/* cashbook entries */

func TestCreateCashbookEntryDerivesTaxFromAccountRate(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", decPtr("13"))

	entry, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Office chair",
		TotalAmount:      decimal.RequireFromString("113.00"),
	})
	require.NoError(t, err)

	require.NotNil(t, entry.TaxAmount)
	assert.True(t, entry.TaxAmount.Equal(decimal.RequireFromString("13.00")), "tax = %s", entry.TaxAmount)
	require.NotNil(t, entry.TaxRateUsed)
	assert.True(t, entry.TaxRateUsed.Equal(decimal.RequireFromString("13")))
	assert.Equal(t, models.EntrySourceManual, entry.Source)
}

func TestCreateCashbookEntryTaxOverride(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", decPtr("13"))

	entry, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Mixed-rate invoice",
		TotalAmount:      decimal.RequireFromString("100.00"),
		TaxAmount:        decPtr("5.00"),
		TaxOverride:      utils.NewTrue(),
	})
	require.NoError(t, err)

	require.NotNil(t, entry.TaxAmount)
	assert.True(t, entry.TaxAmount.Equal(decimal.RequireFromString("5.00")))
	assert.Nil(t, entry.TaxRateUsed)
}

func TestCreateCashbookEntryNoAccountRateMeansNoTax(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Petty Cash", nil)

	entry, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Stamps",
		TotalAmount:      decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)
	assert.Nil(t, entry.TaxAmount)
	assert.Nil(t, entry.TaxRateUsed)
}

func TestCreateCashbookEntryRejectsClosedPeriod(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	_, err := models.CloseAccountingPeriod(ctx, 2023, 7)
	require.NoError(t, err)

	_, err = models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Backdated expense",
		TotalAmount:      decimal.RequireFromString("50.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")

	// adjacent months stay open
	_, err = models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.August, 1),
		Description:      "August expense",
		TotalAmount:      decimal.RequireFromString("50.00"),
	})
	assert.NoError(t, err)
}

func TestUpdateCashbookEntryRejectsEntryInsideClosedPeriod(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	entry, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "July expense",
		TotalAmount:      decimal.RequireFromString("50.00"),
	})
	require.NoError(t, err)

	_, err = models.CloseAccountingPeriod(ctx, 2023, 7)
	require.NoError(t, err)

	// a row cannot be moved out of a closed month
	_, err = models.UpdateCashbookEntry(ctx, entry.ID, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.August, 1),
		Description:      "Moved out",
		TotalAmount:      decimal.RequireFromString("50.00"),
	})
	require.Error(t, err)

	_, err = models.DeleteCashbookEntry(ctx, entry.ID)
	require.Error(t, err)
}

func TestUpdateCashbookEntryRecalculatesTax(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", decPtr("13"))

	entry, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Office chair",
		TotalAmount:      decimal.RequireFromString("113.00"),
	})
	require.NoError(t, err)

	// editing the total without supplying the optional tax_override flag
	// re-derives the tax at the account's rate
	updated, err := models.UpdateCashbookEntry(ctx, entry.ID, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Office chair and desk",
		TotalAmount:      decimal.RequireFromString("226.00"),
	})
	require.NoError(t, err)

	assert.False(t, utils.DereferencePtr(updated.TaxOverride))
	require.NotNil(t, updated.TaxAmount)
	assert.True(t, updated.TaxAmount.Equal(decimal.RequireFromString("26.00")), "tax = %s", updated.TaxAmount)
	require.NotNil(t, updated.TaxRateUsed)
	assert.True(t, updated.TaxRateUsed.Equal(decimal.RequireFromString("13")))

	reloaded, err := models.GetCashbookEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office chair and desk", reloaded.Description)
	require.NotNil(t, reloaded.TaxAmount)
	assert.True(t, reloaded.TaxAmount.Equal(decimal.RequireFromString("26.00")))
}

func TestCashbookEntryTenancy(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	entry, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeIncome,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Invoice 42",
		TotalAmount:      decimal.RequireFromString("250.00"),
	})
	require.NoError(t, err)

	otherUser := utils.SetUserIdInContext(context.Background(), 2)
	_, err = models.GetCashbookEntry(otherUser, entry.ID)
	assert.ErrorIs(t, err, utils.ErrorRecordNotFound)
}

/* balance listing */

func TestListCashbookEntriesRunningBalances(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	seed := []struct {
		entryType models.EntryType
		date      time.Time
		amount    string
	}{
		{models.EntryTypeIncome, day(2023, time.July, 3), "113.00"},
		{models.EntryTypeExpense, day(2023, time.July, 5), "25.50"},
		{models.EntryTypeExpense, day(2023, time.July, 9), "40.00"},
		{models.EntryTypeIncome, day(2023, time.July, 12), "10.25"},
	}
	for _, s := range seed {
		_, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
			PaymentAccountId: account.ID,
			EntryType:        s.entryType,
			EntryDate:        s.date,
			Description:      "seeded",
			TotalAmount:      decimal.RequireFromString(s.amount),
		})
		require.NoError(t, err)
	}

	filter := &models.CashbookEntryFilter{AccountId: &account.ID}
	page, err := models.ListCashbookEntries(ctx, filter, 0, 50)
	require.NoError(t, err)
	require.Len(t, page.Entries, 4)
	assert.Equal(t, int64(4), page.TotalCount)

	// opening 1000.00, then +113.00 -25.50 -40.00 +10.25
	wants := []string{"1113.00", "1087.50", "1047.50", "1057.75"}
	for i, want := range wants {
		require.NotNil(t, page.Entries[i].BankBalance)
		assert.True(t, page.Entries[i].BankBalance.Equal(decimal.RequireFromString(want)),
			"entry %d balance = %s, want %s", i, page.Entries[i].BankBalance, want)
	}
}

func TestListCashbookEntriesPaginationConsistency(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	for i := 0; i < 6; i++ {
		entryType := models.EntryTypeIncome
		if i%2 == 1 {
			entryType = models.EntryTypeExpense
		}
		_, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
			PaymentAccountId: account.ID,
			EntryType:        entryType,
			EntryDate:        day(2023, time.July, i+1),
			Description:      "seeded",
			TotalAmount:      decimal.RequireFromString("10.00").Mul(decimal.NewFromInt(int64(i + 1))),
		})
		require.NoError(t, err)
	}

	filter := &models.CashbookEntryFilter{AccountId: &account.ID}
	full, err := models.ListCashbookEntries(ctx, filter, 0, 50)
	require.NoError(t, err)
	require.Len(t, full.Entries, 6)

	// every paged view must report the same per-entry balance as the full walk
	for offset := 0; offset < 6; offset += 2 {
		page, err := models.ListCashbookEntries(ctx, filter, offset, 2)
		require.NoError(t, err)
		require.Len(t, page.Entries, 2)
		for i, e := range page.Entries {
			want := full.Entries[offset+i]
			assert.Equal(t, want.ID, e.ID)
			require.NotNil(t, e.BankBalance)
			assert.True(t, e.BankBalance.Equal(*want.BankBalance),
				"offset %d entry %d balance = %s, want %s", offset, i, e.BankBalance, want.BankBalance)
		}
	}
}

func TestListCashbookEntriesNoAccountFilterHasNoBalances(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	_, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeIncome,
		EntryDate:        day(2023, time.July, 3),
		Description:      "seeded",
		TotalAmount:      decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	page, err := models.ListCashbookEntries(ctx, &models.CashbookEntryFilter{}, 0, 50)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Nil(t, page.Entries[0].BankBalance)
}

/* import confirm */

func confirmRows() []*models.ParsedExcelRow {
	sales := "Sales"
	unknown := "Crypto Winnings"
	return []*models.ParsedExcelRow{
		{
			RowNumber:    5,
			SheetName:    "Cash_Book",
			Date:         importDate(2023, time.July, 19),
			Description:  "Invoice 18",
			TotalAmount:  decimal.RequireFromString("113.00"),
			CategoryName: &sales,
			EntryType:    models.EntryTypeIncome,
			TaxAmount:    decPtr("13.00"),
		},
		{
			RowNumber:    6,
			SheetName:    "Cash_Book",
			Date:         importDate(2023, time.July, 20),
			Description:  "Unmapped payment",
			TotalAmount:  decimal.RequireFromString("40.00"),
			CategoryName: &unknown,
			EntryType:    models.EntryTypeExpense,
		},
		{
			RowNumber:   7,
			SheetName:   "Cash_Book",
			Description: "Row 7",
			TotalAmount: decimal.RequireFromString("10.00"),
			EntryType:   models.EntryTypeExpense,
			Errors:      []string{"missing date"},
		},
	}
}

func TestConfirmCashbookImport(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	require.NoError(t, models.SeedTransactionCategories(ctx))
	account := createTestAccount(t, ctx, "Business Chequing", decPtr("13"))

	entries, err := models.ConfirmCashbookImport(ctx, &models.ConfirmImportInput{
		AccountId: account.ID,
		Rows:      confirmRows(),
	})
	require.NoError(t, err)
	// the error row is dropped, the other two are persisted
	require.Len(t, entries, 2)

	sales, err := models.GetCategoryByName(ctx, "Sales")
	require.NoError(t, err)
	require.NotNil(t, sales)

	first := entries[0]
	assert.Equal(t, models.EntrySourceExcelImport, first.Source)
	require.NotNil(t, first.SourceId)
	assert.Equal(t, "Cash_Book:5", *first.SourceId)
	require.NotNil(t, first.CategoryId)
	assert.Equal(t, sales.ID, *first.CategoryId)
	// the sheet carried a tax figure, stored verbatim as an override
	assert.True(t, utils.DereferencePtr(first.TaxOverride))
	require.NotNil(t, first.TaxAmount)
	assert.True(t, first.TaxAmount.Equal(decimal.RequireFromString("13.00")))
	assert.Nil(t, first.TaxRateUsed)

	// unresolved category names degrade to uncategorized, never auto-create
	second := entries[1]
	assert.Nil(t, second.CategoryId)
	missing, err := models.GetCategoryByName(ctx, "Crypto Winnings")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestConfirmCashbookImportIsIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	require.NoError(t, models.SeedTransactionCategories(ctx))
	account := createTestAccount(t, ctx, "Business Chequing", decPtr("13"))

	input := &models.ConfirmImportInput{AccountId: account.ID, Rows: confirmRows()}

	entries, err := models.ConfirmCashbookImport(ctx, input)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// re-confirming the same rows inserts nothing
	entries, err = models.ConfirmCashbookImport(ctx, input)
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := utils.ResourceCountWhere[models.CashbookEntry](ctx, 1, "payment_account_id = ?", account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestConfirmCashbookImportRejectsClosedPeriod(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	require.NoError(t, models.SeedTransactionCategories(ctx))
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	_, err := models.CloseAccountingPeriod(ctx, 2023, 7)
	require.NoError(t, err)

	_, err = models.ConfirmCashbookImport(ctx, &models.ConfirmImportInput{
		AccountId: account.ID,
		Rows:      confirmRows(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")

	// nothing was written
	count, err := utils.ResourceCountWhere[models.CashbookEntry](ctx, 1, "payment_account_id = ?", account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestConfirmCashbookImportDerivesTaxWhenSheetHasNone(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", decPtr("13"))

	entries, err := models.ConfirmCashbookImport(ctx, &models.ConfirmImportInput{
		AccountId: account.ID,
		Rows: []*models.ParsedExcelRow{
			{
				RowNumber:   4,
				SheetName:   "Cash_Book",
				Date:        importDate(2023, time.July, 19),
				Description: "Supplies run",
				TotalAmount: decimal.RequireFromString("113.00"),
				EntryType:   models.EntryTypeExpense,
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.False(t, utils.DereferencePtr(entries[0].TaxOverride))
	require.NotNil(t, entries[0].TaxAmount)
	assert.True(t, entries[0].TaxAmount.Equal(decimal.RequireFromString("13.00")))
	require.NotNil(t, entries[0].TaxRateUsed)
}

/* payment accounts */

func TestPaymentAccountDefaultIsExclusive(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()

	first, err := models.CreatePaymentAccount(ctx, &models.NewPaymentAccount{
		AccountType:        models.PaymentAccountTypeBank,
		AccountName:        "Chequing",
		OpeningBalanceDate: day(2023, time.January, 1),
		IsDefault:          utils.NewTrue(),
	})
	require.NoError(t, err)

	second, err := models.CreatePaymentAccount(ctx, &models.NewPaymentAccount{
		AccountType:        models.PaymentAccountTypeCreditCard,
		AccountName:        "Visa",
		OpeningBalanceDate: day(2023, time.January, 1),
		IsDefault:          utils.NewTrue(),
	})
	require.NoError(t, err)

	reloaded, err := models.GetPaymentAccount(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, utils.DereferencePtr(reloaded.IsDefault))

	reloaded, err = models.GetPaymentAccount(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, utils.DereferencePtr(reloaded.IsDefault))
}

func TestUpdatePaymentAccountWithoutOptionalFlags(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()

	account, err := models.CreatePaymentAccount(ctx, &models.NewPaymentAccount{
		AccountType:        models.PaymentAccountTypeBank,
		AccountName:        "Chequing",
		OpeningBalanceDate: day(2023, time.January, 1),
		IsDefault:          utils.NewTrue(),
	})
	require.NoError(t, err)

	// omitting is_default and default_tax_rate must not break the update
	updated, err := models.UpdatePaymentAccount(ctx, account.ID, &models.NewPaymentAccount{
		AccountType:        models.PaymentAccountTypeBank,
		AccountName:        "Operating Chequing",
		OpeningBalance:     decimal.RequireFromString("500.00"),
		OpeningBalanceDate: day(2023, time.January, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, "Operating Chequing", updated.AccountName)
	assert.False(t, utils.DereferencePtr(updated.IsDefault))
	assert.Nil(t, updated.DefaultTaxRate)
}

func TestDeletePaymentAccountBlockedByEntries(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	account := createTestAccount(t, ctx, "Business Chequing", nil)

	_, err := models.CreateCashbookEntry(ctx, &models.NewCashbookEntry{
		PaymentAccountId: account.ID,
		EntryType:        models.EntryTypeExpense,
		EntryDate:        day(2023, time.July, 19),
		Description:      "Groceries",
		TotalAmount:      decimal.RequireFromString("45.00"),
	})
	require.NoError(t, err)

	_, err = models.DeletePaymentAccount(ctx, account.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has entries")
}

/* categories */

func TestSeedTransactionCategoriesIsIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()

	require.NoError(t, models.SeedTransactionCategories(ctx))
	require.NoError(t, models.SeedTransactionCategories(ctx))

	categories, err := models.ListTransactionCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 20)
}

func TestSystemCategoryCannotBeDeleted(t *testing.T) {
	setupTestDB(t)
	ctx := testContext()
	require.NoError(t, models.SeedTransactionCategories(ctx))

	sales, err := models.GetCategoryByName(ctx, "Sales")
	require.NoError(t, err)
	require.NotNil(t, sales)

	_, err = models.DeleteTransactionCategory(ctx, sales.ID)
	require.Error(t, err)
}
