package models

import "errors"

type PaymentAccountType string

const (
	PaymentAccountTypeBank       PaymentAccountType = "bank"
	PaymentAccountTypeCreditCard PaymentAccountType = "credit_card"
)

func (t PaymentAccountType) Valid() error {
	switch t {
	case PaymentAccountTypeBank, PaymentAccountTypeCreditCard:
		return nil
	}
	return errors.New("invalid account type")
}

type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

func (t EntryType) Valid() error {
	switch t {
	case EntryTypeIncome, EntryTypeExpense:
		return nil
	}
	return errors.New("invalid entry type")
}

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

func (t CategoryType) Valid() error {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeBoth:
		return nil
	}
	return errors.New("invalid category type")
}

type EntrySource string

const (
	EntrySourceManual      EntrySource = "manual"
	EntrySourceExcelImport EntrySource = "excel_import"
	EntrySourceAiCapture   EntrySource = "ai_capture"
)

// MatchMode says how a spreadsheet header is matched against a vocabulary key.
type MatchMode int

const (
	MatchContains MatchMode = iota
	MatchExact
)
