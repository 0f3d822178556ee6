package models

import (
	"context"
	"errors"
	"time"

	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/utils"
	"github.com/shopspring/decimal"
)

// CashbookEntry is a single-sided ledger row: one dated income or expense
// transaction against one payment account. No transfers, no debit/credit
// pairs. TotalAmount is tax-inclusive and always positive; the sign comes
// from EntryType.
type CashbookEntry struct {
	ID               int              `gorm:"primary_key" json:"id"`
	UserId           int              `gorm:"index;not null" json:"user_id"`
	PaymentAccountId int              `gorm:"index;not null;uniqueIndex:idx_account_source" json:"payment_account_id" binding:"required"`
	EntryType        EntryType        `gorm:"type:enum('income','expense');not null" json:"entry_type" binding:"required"`
	EntryDate        time.Time        `gorm:"index;not null" json:"entry_date" binding:"required"`
	Description      string           `gorm:"type:text" json:"description"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	TaxAmount        *decimal.Decimal `gorm:"type:decimal(20,4)" json:"tax_amount"`
	TaxRateUsed      *decimal.Decimal `gorm:"type:decimal(10,4)" json:"tax_rate_used"`
	TaxOverride      *bool            `gorm:"not null;default:false" json:"tax_override"`
	CategoryId       *int             `gorm:"index" json:"category_id"`
	ContactId        *int             `gorm:"index" json:"contact_id"`
	DocumentId       *int             `json:"document_id"`
	Source           EntrySource      `gorm:"type:enum('manual','excel_import','ai_capture');default:'manual';not null" json:"source"`
	SourceId         *string          `gorm:"size:255;uniqueIndex:idx_account_source" json:"source_id"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCashbookEntry struct {
	PaymentAccountId int              `json:"payment_account_id" binding:"required"`
	EntryType        EntryType        `json:"entry_type" binding:"required"`
	EntryDate        time.Time        `json:"entry_date" binding:"required"`
	Description      string           `json:"description"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	TaxAmount        *decimal.Decimal `json:"tax_amount"`
	TaxOverride      *bool            `json:"tax_override"`
	CategoryId       *int             `json:"category_id"`
	ContactId        *int             `json:"contact_id"`
	DocumentId       *int             `json:"document_id"`
}

func (e CashbookEntry) GetId() int {
	return e.ID
}

func (e CashbookEntry) CheckPeriodLock(ctx context.Context) error {
	return validatePeriodOpen(ctx, e.UserId, e.EntryDate)
}

// applyTax fills TaxAmount/TaxRateUsed per the tax invariant: an overridden
// tax amount is trusted verbatim with no rate recorded; otherwise the
// account's default rate (when set and positive) derives the tax from the
// tax-inclusive total.
func (e *CashbookEntry) applyTax(account *PaymentAccount, suppliedTax *decimal.Decimal) {
	if utils.DereferencePtr(e.TaxOverride) {
		e.TaxAmount = suppliedTax
		e.TaxRateUsed = nil
		return
	}
	if account.DefaultTaxRate != nil && account.DefaultTaxRate.GreaterThan(decimal.Zero) {
		tax := CalculateTax(e.TotalAmount, *account.DefaultTaxRate)
		rate := *account.DefaultTaxRate
		e.TaxAmount = &tax
		e.TaxRateUsed = &rate
		return
	}
	e.TaxAmount = nil
	e.TaxRateUsed = nil
}

// validate input for both create & update. (id = 0 for create)
func (input *NewCashbookEntry) validate(ctx context.Context, userId int, id int) (*PaymentAccount, error) {
	if err := input.EntryType.Valid(); err != nil {
		return nil, err
	}
	if !input.TotalAmount.GreaterThan(decimal.Zero) {
		return nil, errors.New("total amount must be greater than zero")
	}
	account, err := utils.FetchModel[PaymentAccount](ctx, userId, input.PaymentAccountId)
	if err != nil {
		return nil, errors.New("payment account not found")
	}
	if input.CategoryId != nil {
		db := config.GetDB()
		var count int64
		if err := db.WithContext(ctx).Model(&TransactionCategory{}).Where("id = ?", *input.CategoryId).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errors.New("category not found")
		}
	}
	// period lock for the (new) entry date
	if err := validatePeriodOpen(ctx, userId, input.EntryDate); err != nil {
		return nil, err
	}
	return account, nil
}

func CreateCashbookEntry(ctx context.Context, input *NewCashbookEntry) (*CashbookEntry, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	account, err := input.validate(ctx, userId, 0)
	if err != nil {
		return nil, err
	}

	entry := CashbookEntry{
		UserId:           userId,
		PaymentAccountId: input.PaymentAccountId,
		EntryType:        input.EntryType,
		EntryDate:        input.EntryDate,
		Description:      input.Description,
		TotalAmount:      input.TotalAmount,
		TaxOverride:      input.TaxOverride,
		CategoryId:       input.CategoryId,
		ContactId:        input.ContactId,
		DocumentId:       input.DocumentId,
		Source:           EntrySourceManual,
	}
	// tax_override is optional on input but NOT NULL in the store
	if entry.TaxOverride == nil {
		entry.TaxOverride = utils.NewFalse()
	}
	entry.applyTax(account, input.TaxAmount)

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func UpdateCashbookEntry(ctx context.Context, id int, input *NewCashbookEntry) (*CashbookEntry, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	// the stored entry's date must also be in an open period, so a row cannot
	// be moved out of a closed month
	oldEntry, err := utils.FetchModelForChange[CashbookEntry](ctx, userId, id)
	if err != nil {
		return nil, err
	}

	account, err := input.validate(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	entry := CashbookEntry{
		ID:               id,
		UserId:           userId,
		PaymentAccountId: input.PaymentAccountId,
		EntryType:        input.EntryType,
		EntryDate:        input.EntryDate,
		Description:      input.Description,
		TotalAmount:      input.TotalAmount,
		TaxOverride:      input.TaxOverride,
		CategoryId:       input.CategoryId,
		ContactId:        input.ContactId,
		DocumentId:       input.DocumentId,
		Source:           oldEntry.Source,
		SourceId:         oldEntry.SourceId,
	}
	// tax_override is optional on input but NOT NULL in the store
	if entry.TaxOverride == nil {
		entry.TaxOverride = utils.NewFalse()
	}
	entry.applyTax(account, input.TaxAmount)

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&CashbookEntry{ID: id}).Updates(map[string]interface{}{
		"PaymentAccountId": entry.PaymentAccountId,
		"EntryType":        entry.EntryType,
		"EntryDate":        entry.EntryDate,
		"Description":      entry.Description,
		"TotalAmount":      entry.TotalAmount,
		"TaxAmount":        entry.TaxAmount,
		"TaxRateUsed":      entry.TaxRateUsed,
		"TaxOverride":      entry.TaxOverride,
		"CategoryId":       entry.CategoryId,
		"ContactId":        entry.ContactId,
		"DocumentId":       entry.DocumentId,
	}).Error
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = oldEntry.CreatedAt
	return &entry, nil
}

// DeleteCashbookEntry hard-deletes; there is no soft delete in the cashbook.
func DeleteCashbookEntry(ctx context.Context, id int) (*CashbookEntry, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	entry, err := utils.FetchModelForChange[CashbookEntry](ctx, userId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func GetCashbookEntry(ctx context.Context, id int) (*CashbookEntry, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	return utils.FetchModel[CashbookEntry](ctx, userId, id)
}
