package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/utils"
)

// DefaultImportTaxRatePercent matches the Ontario HST template the reference
// accountant workbook is built around.
const DefaultImportTaxRatePercent = 13.0

type ConfirmImportInput struct {
	AccountId int               `json:"account_id" binding:"required"`
	Rows      []*ParsedExcelRow `json:"rows" binding:"required"`
}

// ConfirmCashbookImport turns a previously previewed (and possibly
// user-edited) row set into persisted ledger entries. The two phases share
// no state: the caller resends the full row set.
//
// Rows carrying errors or no date are dropped silently (they were already
// surfaced during preview). Unresolved category names degrade to an
// uncategorized entry. Rows whose source id already exists for the account
// are skipped, so re-importing the same file does not duplicate entries.
// The surviving rows are inserted as one batch: all or nothing.
func ConfirmCashbookImport(ctx context.Context, input *ConfirmImportInput) ([]*CashbookEntry, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	account, err := utils.FetchModel[PaymentAccount](ctx, userId, input.AccountId)
	if err != nil {
		return nil, errors.New("payment account not found")
	}

	var eligible []*ParsedExcelRow
	for _, row := range input.Rows {
		if len(row.Errors) > 0 || row.Date == nil {
			continue
		}
		eligible = append(eligible, row)
	}
	if len(eligible) == 0 {
		return []*CashbookEntry{}, nil
	}

	// period lock is evaluated immediately before the mutating write, once
	// per row date
	for _, row := range eligible {
		if err := validatePeriodOpen(ctx, userId, row.Date.Time()); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", row.SheetName, row.RowNumber, err)
		}
	}

	existingSourceIds, err := sourceIdsForAccount(ctx, userId, account.ID)
	if err != nil {
		return nil, err
	}

	categoryIds := map[string]*int{}
	resolveCategory := func(name *string) (*int, error) {
		if name == nil || *name == "" {
			return nil, nil
		}
		if id, ok := categoryIds[*name]; ok {
			return id, nil
		}
		category, err := GetCategoryByName(ctx, *name)
		if err != nil {
			return nil, err
		}
		var id *int
		if category != nil {
			id = &category.ID
		}
		categoryIds[*name] = id
		return id, nil
	}

	var entries []*CashbookEntry
	for _, row := range eligible {
		sourceId := fmt.Sprintf("%s:%d", row.SheetName, row.RowNumber)
		if existingSourceIds[sourceId] {
			continue
		}

		categoryId, err := resolveCategory(row.CategoryName)
		if err != nil {
			return nil, err
		}

		entry := &CashbookEntry{
			UserId:           userId,
			PaymentAccountId: account.ID,
			EntryType:        row.EntryType,
			EntryDate:        row.Date.Time(),
			Description:      row.Description,
			TotalAmount:      row.TotalAmount,
			CategoryId:       categoryId,
			Source:           EntrySourceExcelImport,
			SourceId:         &sourceId,
		}
		if entry.Description == "" {
			entry.Description = fmt.Sprintf("Row %d", row.RowNumber)
		}
		if row.TaxAmount != nil {
			// tax came off the sheet (or was derived during preview);
			// trust it verbatim
			entry.TaxOverride = utils.NewTrue()
			entry.TaxAmount = row.TaxAmount
		} else {
			entry.TaxOverride = utils.NewFalse()
			entry.applyTax(account, nil)
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return []*CashbookEntry{}, nil
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&entries).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func sourceIdsForAccount(ctx context.Context, userId int, accountId int) (map[string]bool, error) {
	db := config.GetDB()
	var ids []string
	err := db.WithContext(ctx).Model(&CashbookEntry{}).
		Where("user_id = ? AND payment_account_id = ? AND source_id IS NOT NULL", userId, accountId).
		Pluck("source_id", &ids).Error
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}
