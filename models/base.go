package models

import (
	"context"
	"errors"
	"time"

	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/utils"
)

// AccountingPeriod is one calendar month that can be administratively closed.
// Once closed, no cashbook entry dated inside it may be created, edited or
// deleted. The check runs immediately before each mutating store call and is
// never cached; concurrent mutations against a now-closing period race at the
// store's isolation level, not here.
type AccountingPeriod struct {
	ID        int       `gorm:"primary_key" json:"id"`
	UserId    int       `gorm:"index;not null;uniqueIndex:idx_user_period" json:"user_id"`
	Year      int       `gorm:"not null;uniqueIndex:idx_user_period" json:"year"`
	Month     int       `gorm:"not null;uniqueIndex:idx_user_period" json:"month"`
	IsClosed  *bool     `gorm:"not null;default:false" json:"is_closed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p AccountingPeriod) GetId() int {
	return p.ID
}

// validatePeriodOpen rejects mutations dated inside a closed period.
// A month with no period row is open.
func validatePeriodOpen(ctx context.Context, userId int, transactionDate time.Time) error {
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&AccountingPeriod{}).
		Where("user_id = ? AND year = ? AND month = ? AND is_closed = ?",
			userId, transactionDate.Year(), int(transactionDate.Month()), true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("accounting period has been closed")
	}
	return nil
}

func CloseAccountingPeriod(ctx context.Context, year int, month int) (*AccountingPeriod, error) {
	return setPeriodClosed(ctx, year, month, true)
}

func ReopenAccountingPeriod(ctx context.Context, year int, month int) (*AccountingPeriod, error) {
	return setPeriodClosed(ctx, year, month, false)
}

func setPeriodClosed(ctx context.Context, year int, month int, closed bool) (*AccountingPeriod, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	if month < 1 || month > 12 {
		return nil, errors.New("invalid month")
	}

	db := config.GetDB()
	var period AccountingPeriod
	err := db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userId, year, month).
		First(&period).Error
	if err != nil {
		period = AccountingPeriod{
			UserId:   userId,
			Year:     year,
			Month:    month,
			IsClosed: &closed,
		}
		if err := db.WithContext(ctx).Create(&period).Error; err != nil {
			return nil, err
		}
		return &period, nil
	}

	period.IsClosed = &closed
	if err := db.WithContext(ctx).Model(&period).Update("is_closed", closed).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

func ListAccountingPeriods(ctx context.Context) ([]*AccountingPeriod, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, errors.New("user id is required")
	}
	db := config.GetDB()
	var periods []*AccountingPeriod
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("year ASC, month ASC").
		Find(&periods).Error
	return periods, err
}

// Migrate creates / updates the schema for every model in this package.
func Migrate() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&PaymentAccount{},
		&TransactionCategory{},
		&CashbookEntry{},
		&AccountingPeriod{},
	)
}
