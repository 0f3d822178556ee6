package utils

import (
	"context"

	"github.com/mapleledger/cashbook_backend/config"
)

type ModelChangeLocker interface {
	CheckPeriodLock(context.Context) error
}

/* DB fetching */

// fetch model from db
// (ctx's user_id is used in query's WHERE, may return RecordNotFound)
func FetchModel[T any](ctx context.Context, userId int, id int, associations ...string) (*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("user_id = ?", userId)
	// preloading
	for _, field := range associations {
		dbCtx.Preload(field)
	}
	var result T
	err := dbCtx.First(&result, id).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return &result, nil
}

// fetch model and check the accounting period lock for its date
func FetchModelForChange[T ModelChangeLocker](ctx context.Context, userId int, id int, associations ...string) (*T, error) {
	result, err := FetchModel[T](ctx, userId, id, associations...)
	if err != nil {
		return nil, err
	}
	if err := (*result).CheckPeriodLock(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// fetch all models from db
// (ctx's user_id is used in query's WHERE)
func FetchAllModels[T any](ctx context.Context, userId int, associations ...string) ([]*T, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("user_id = ?", userId)
	// preloading
	for _, field := range associations {
		dbCtx.Preload(field)
	}
	var results []*T
	err := dbCtx.Find(&results).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return results, nil
}
