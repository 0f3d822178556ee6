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

// PaymentAccount is a cash ledger account (bank or credit card). There is no
// stored current balance: every balance the API returns is derived from
// OpeningBalance plus the signed sum of entries.
type PaymentAccount struct {
	ID                 int                `gorm:"primary_key" json:"id"`
	UserId             int                `gorm:"index;not null" json:"user_id"`
	AccountType        PaymentAccountType `gorm:"type:enum('bank','credit_card');default:'bank';not null" json:"account_type" binding:"required"`
	AccountName        string             `gorm:"index;size:100;not null" json:"account_name" binding:"required"`
	OpeningBalance     decimal.Decimal    `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	OpeningBalanceDate time.Time          `gorm:"not null" json:"opening_balance_date"`
	DefaultTaxRate     *decimal.Decimal   `gorm:"type:decimal(10,4)" json:"default_tax_rate"`
	IsDefault          *bool              `gorm:"not null;default:false" json:"is_default"`
	IsActive           *bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPaymentAccount struct {
	AccountType        PaymentAccountType `json:"account_type" binding:"required"`
	AccountName        string             `json:"account_name" binding:"required"`
	OpeningBalance     decimal.Decimal    `json:"opening_balance"`
	OpeningBalanceDate time.Time          `json:"opening_balance_date" binding:"required"`
	DefaultTaxRate     *decimal.Decimal   `json:"default_tax_rate"`
	IsDefault          *bool              `json:"is_default"`
}

func (a PaymentAccount) GetId() int {
	return a.ID
}

// validate input for both create & update. (id = 0 for create)
func (input *NewPaymentAccount) validate(ctx context.Context, userId int, id int) error {
	if id > 0 {
		if err := utils.ValidateResourceId[PaymentAccount](ctx, userId, id); err != nil {
			return err
		}
	}
	if err := input.AccountType.Valid(); err != nil {
		return err
	}
	if err := utils.ValidateUnique[PaymentAccount](ctx, userId, "account_name", input.AccountName, id); err != nil {
		return err
	}
	if input.DefaultTaxRate != nil && input.DefaultTaxRate.IsNegative() {
		return errors.New("default tax rate cannot be negative")
	}
	return nil
}

func CreatePaymentAccount(ctx context.Context, input *NewPaymentAccount) (*PaymentAccount, error) {

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	if err := input.validate(ctx, userId, 0); err != nil {
		return nil, err
	}

	account := PaymentAccount{
		UserId:             userId,
		AccountType:        input.AccountType,
		AccountName:        input.AccountName,
		OpeningBalance:     input.OpeningBalance,
		OpeningBalanceDate: input.OpeningBalanceDate,
		DefaultTaxRate:     input.DefaultTaxRate,
		IsDefault:          input.IsDefault,
		IsActive:           utils.NewTrue(),
	}
	// is_default is optional on input but NOT NULL in the store
	if account.IsDefault == nil {
		account.IsDefault = utils.NewFalse()
	}

	db := config.GetDB()
	// The default flag is exclusive per user; clearing the previous default
	// and setting the new one happens inside one transaction.
	tx := db.Begin()
	if utils.DereferencePtr(input.IsDefault) {
		if err := clearOtherDefaults(ctx, tx, userId, 0); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.WithContext(ctx).Create(&account).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func UpdatePaymentAccount(ctx context.Context, id int, input *NewPaymentAccount) (*PaymentAccount, error) {

	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}

	if err := input.validate(ctx, userId, id); err != nil {
		return nil, err
	}

	account := PaymentAccount{ID: id, UserId: userId}

	// is_default is optional on input but NOT NULL in the store
	isDefault := input.IsDefault
	if isDefault == nil {
		isDefault = utils.NewFalse()
	}

	db := config.GetDB()
	tx := db.Begin()
	if utils.DereferencePtr(isDefault) {
		if err := clearOtherDefaults(ctx, tx, userId, id); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	err := tx.WithContext(ctx).Model(&account).Updates(map[string]interface{}{
		"AccountType":        input.AccountType,
		"AccountName":        input.AccountName,
		"OpeningBalance":     input.OpeningBalance,
		"OpeningBalanceDate": input.OpeningBalanceDate,
		"DefaultTaxRate":     input.DefaultTaxRate,
		"IsDefault":          isDefault,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return utils.FetchModel[PaymentAccount](ctx, userId, id)
}

func clearOtherDefaults(ctx context.Context, tx *gorm.DB, userId int, exceptId int) error {
	dbCtx := tx.WithContext(ctx).Model(&PaymentAccount{}).Where("user_id = ?", userId)
	if exceptId > 0 {
		dbCtx = dbCtx.Where("id <> ?", exceptId)
	}
	return dbCtx.Update("is_default", false).Error
}

func TogglePaymentAccountActive(ctx context.Context, id int, isActive bool) (*PaymentAccount, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	account, err := utils.FetchModel[PaymentAccount](ctx, userId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(account).Update("is_active", isActive).Error; err != nil {
		return nil, err
	}
	account.IsActive = &isActive
	return account, nil
}

func DeletePaymentAccount(ctx context.Context, id int) (*PaymentAccount, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	account, err := utils.FetchModel[PaymentAccount](ctx, userId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[CashbookEntry](ctx, userId, "payment_account_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("account has entries and cannot be deleted")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func GetPaymentAccount(ctx context.Context, id int) (*PaymentAccount, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	return utils.FetchModel[PaymentAccount](ctx, userId, id)
}

func ListPaymentAccounts(ctx context.Context) ([]*PaymentAccount, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	db := config.GetDB()
	var accounts []*PaymentAccount
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("account_name ASC").
		Find(&accounts).Error
	return accounts, err
}
