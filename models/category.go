package models

import (
	"context"
	"errors"
	"time"

	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/utils"
	"gorm.io/gorm"
)

// TransactionCategory names are globally unique and shared across users; the
// system-seeded set mirrors the accountant template's column headings. The
// category's type is informational only and is not enforced against the entry
// type of entries that reference it.
type TransactionCategory struct {
	ID           int          `gorm:"primary_key" json:"id"`
	Name         string       `gorm:"size:100;not null;uniqueIndex" json:"name" binding:"required"`
	CategoryType CategoryType `gorm:"type:enum('income','expense','both');default:'expense';not null" json:"category_type" binding:"required"`
	IsSystem     *bool        `gorm:"not null;default:false" json:"is_system"`
	DisplayOrder int          `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransactionCategory struct {
	Name         string       `json:"name" binding:"required"`
	CategoryType CategoryType `json:"category_type" binding:"required"`
	DisplayOrder int          `json:"display_order"`
}

func (c TransactionCategory) GetId() int {
	return c.ID
}

const categoryListCacheKey = "TransactionCategory:List"

func (input *NewTransactionCategory) validate(ctx context.Context, id int) error {
	if err := input.CategoryType.Valid(); err != nil {
		return err
	}
	if input.Name == "" {
		return errors.New("category name is required")
	}
	return utils.ValidateUnique[TransactionCategory](ctx, 0, "name", input.Name, id)
}

func CreateTransactionCategory(ctx context.Context, input *NewTransactionCategory) (*TransactionCategory, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}
	category := TransactionCategory{
		Name:         input.Name,
		CategoryType: input.CategoryType,
		IsSystem:     utils.NewFalse(),
		DisplayOrder: input.DisplayOrder,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	config.RemoveRedisKey(categoryListCacheKey)
	return &category, nil
}

func UpdateTransactionCategory(ctx context.Context, id int, input *NewTransactionCategory) (*TransactionCategory, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	db := config.GetDB()
	var category TransactionCategory
	if err := db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if utils.DereferencePtr(category.IsSystem) {
		return nil, errors.New("system categories cannot be renamed")
	}
	err := db.WithContext(ctx).Model(&category).Updates(map[string]interface{}{
		"Name":         input.Name,
		"CategoryType": input.CategoryType,
		"DisplayOrder": input.DisplayOrder,
	}).Error
	if err != nil {
		return nil, err
	}
	config.RemoveRedisKey(categoryListCacheKey)
	return &category, nil
}

func DeleteTransactionCategory(ctx context.Context, id int) (*TransactionCategory, error) {
	db := config.GetDB()
	var category TransactionCategory
	if err := db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if utils.DereferencePtr(category.IsSystem) {
		return nil, errors.New("system categories cannot be deleted")
	}
	var inUse int64
	if err := db.WithContext(ctx).Model(&CashbookEntry{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return nil, err
	}
	if inUse > 0 {
		return nil, errors.New("category is in use and cannot be deleted")
	}
	if err := db.WithContext(ctx).Delete(&category).Error; err != nil {
		return nil, err
	}
	config.RemoveRedisKey(categoryListCacheKey)
	return &category, nil
}

// ListTransactionCategories reads through the redis cache; a nil or cold
// cache falls back to the DB and repopulates.
func ListTransactionCategories(ctx context.Context) ([]*TransactionCategory, error) {
	var categories []*TransactionCategory
	found, err := config.GetRedisObject(categoryListCacheKey, &categories)
	if err == nil && found {
		return categories, nil
	}

	db := config.GetDB()
	err = db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	config.SetRedisObject(categoryListCacheKey, categories, time.Hour)
	return categories, nil
}

// GetCategoryByName resolves a category by exact name. Returns
// (nil, nil) on a miss; callers degrade to an uncategorized entry
// rather than auto-creating categories.
func GetCategoryByName(ctx context.Context, name string) (*TransactionCategory, error) {
	if name == "" {
		return nil, nil
	}
	db := config.GetDB()
	var category TransactionCategory
	err := db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// SeedTransactionCategories inserts the system category set, skipping names
// that already exist. Safe to run repeatedly.
func SeedTransactionCategories(ctx context.Context) error {
	db := config.GetDB()
	for i, seed := range systemCategorySeed {
		var count int64
		if err := db.WithContext(ctx).Model(&TransactionCategory{}).Where("name = ?", seed.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		category := TransactionCategory{
			Name:         seed.name,
			CategoryType: seed.categoryType,
			IsSystem:     utils.NewTrue(),
			DisplayOrder: i + 1,
		}
		if err := db.WithContext(ctx).Create(&category).Error; err != nil {
			return err
		}
	}
	config.RemoveRedisKey(categoryListCacheKey)
	return nil
}

var systemCategorySeed = []struct {
	name         string
	categoryType CategoryType
}{
	{"Sales", CategoryTypeIncome},
	{"Other Income", CategoryTypeIncome},
	{"Interest Income", CategoryTypeIncome},
	{"Advertising", CategoryTypeExpense},
	{"Bank Charges", CategoryTypeExpense},
	{"Fuel", CategoryTypeExpense},
	{"Insurance", CategoryTypeExpense},
	{"Interest", CategoryTypeExpense},
	{"Meals & Entertainment", CategoryTypeExpense},
	{"Office Expenses", CategoryTypeExpense},
	{"Professional Fees", CategoryTypeExpense},
	{"Rent", CategoryTypeExpense},
	{"Repairs & Maintenance", CategoryTypeExpense},
	{"Supplies", CategoryTypeExpense},
	{"Telephone", CategoryTypeExpense},
	{"Travel", CategoryTypeExpense},
	{"Utilities", CategoryTypeExpense},
	{"Vehicle", CategoryTypeExpense},
	{"Wages", CategoryTypeExpense},
	{"Miscellaneous", CategoryTypeBoth},
}
