package models

import (
	"context"
	"errors"
	"time"

	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The ledger ordering key. Entries are always walked in
// (entry_date ASC, created_at ASC, id ASC) order; id is the final tie-break
// so that rows inserted in the same batch order deterministically.
const entryOrder = "entry_date ASC, created_at ASC, id ASC"

type CashbookEntryFilter struct {
	AccountId  *int
	EntryType  *EntryType
	CategoryId *int
	StartDate  *time.Time
	EndDate    *time.Time
	Search     *string
}

// CashbookEntryWithBalance annotates an entry with the account balance as of
// immediately after that transaction. BankBalance is nil when the listing is
// not scoped to a single account: cross-account running balances are
// undefined.
type CashbookEntryWithBalance struct {
	CashbookEntry
	BankBalance *decimal.Decimal `json:"bank_balance"`
}

type CashbookEntriesPage struct {
	Entries    []*CashbookEntryWithBalance `json:"entries"`
	TotalCount int64                       `json:"total_count"`
	Offset     int                         `json:"offset"`
	Limit      int                         `json:"limit"`
}

func (f *CashbookEntryFilter) apply(dbCtx *gorm.DB) *gorm.DB {
	if f == nil {
		return dbCtx
	}
	if f.AccountId != nil && *f.AccountId > 0 {
		dbCtx = dbCtx.Where("payment_account_id = ?", *f.AccountId)
	}
	if f.EntryType != nil && *f.EntryType != "" {
		dbCtx = dbCtx.Where("entry_type = ?", *f.EntryType)
	}
	if f.CategoryId != nil && *f.CategoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", *f.CategoryId)
	}
	if f.StartDate != nil {
		dbCtx = dbCtx.Where("entry_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		dbCtx = dbCtx.Where("entry_date <= ?", *f.EndDate)
	}
	if f.Search != nil && *f.Search != "" {
		dbCtx = dbCtx.Where("description LIKE ?", "%"+*f.Search+"%")
	}
	return dbCtx
}

// ListCashbookEntries returns one page of entries in ledger order, annotated
// with running balances when an account filter is present.
//
// The projection is two-step: one aggregate query computes the carry-forward
// (opening balance plus the signed sum of every account entry strictly before
// the page's first returned entry by the ordering key), then the page is
// walked forward. This keeps pagination O(page) without re-summing history
// per row, and anchors on the first entry actually returned rather than the
// offset index.
func ListCashbookEntries(ctx context.Context, filter *CashbookEntryFilter, offset int, limit int) (*CashbookEntriesPage, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	db := config.GetDB()
	base := filter.apply(db.WithContext(ctx).Model(&CashbookEntry{}).Where("user_id = ?", userId))

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var rows []*CashbookEntry
	err := filter.apply(db.WithContext(ctx).Where("user_id = ?", userId)).
		Order(entryOrder).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	page := &CashbookEntriesPage{
		TotalCount: totalCount,
		Offset:     offset,
		Limit:      limit,
	}
	for _, row := range rows {
		page.Entries = append(page.Entries, &CashbookEntryWithBalance{CashbookEntry: *row})
	}

	if filter == nil || filter.AccountId == nil || *filter.AccountId <= 0 || len(page.Entries) == 0 {
		return page, nil
	}

	account, err := utils.FetchModel[PaymentAccount](ctx, userId, *filter.AccountId)
	if err != nil {
		return nil, errors.New("payment account not found")
	}

	carry, err := carryForwardBefore(ctx, account, &page.Entries[0].CashbookEntry)
	if err != nil {
		return nil, err
	}
	applyRunningBalances(page.Entries, carry)
	return page, nil
}

// carryForwardBefore sums the account's full history strictly before the
// given entry by the ordering key, on top of the opening balance. "Before"
// is relative to the entry itself, not any filter or offset.
func carryForwardBefore(ctx context.Context, account *PaymentAccount, first *CashbookEntry) (decimal.Decimal, error) {
	db := config.GetDB()

	var result struct {
		Total decimal.Decimal
	}
	err := db.WithContext(ctx).Model(&CashbookEntry{}).
		Select("COALESCE(SUM(CASE WHEN entry_type = ? THEN total_amount ELSE -total_amount END), 0) AS total", EntryTypeIncome).
		Where("user_id = ? AND payment_account_id = ?", account.UserId, account.ID).
		Where(
			"(entry_date < ?) OR (entry_date = ? AND created_at < ?) OR (entry_date = ? AND created_at = ? AND id < ?)",
			first.EntryDate,
			first.EntryDate, first.CreatedAt,
			first.EntryDate, first.CreatedAt, first.ID,
		).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return account.OpeningBalance.Add(result.Total), nil
}

// applyRunningBalances walks entries in order, accumulating income minus
// expense on top of the carry-forward. Each entry's balance is the value
// immediately after that transaction, banker's-rounded to 2 decimals.
func applyRunningBalances(entries []*CashbookEntryWithBalance, carryForward decimal.Decimal) {
	running := carryForward
	for _, e := range entries {
		if e.EntryType == EntryTypeIncome {
			running = running.Add(e.TotalAmount)
		} else {
			running = running.Sub(e.TotalAmount)
		}
		balance := running.RoundBank(2)
		e.BankBalance = &balance
	}
}
