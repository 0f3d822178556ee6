package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProcessValidationErrors flattens binding failures into a field -> rule map
// for the error response body. Returns nil when err is not a validation error.
func ProcessValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	errorResponse := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// DereferencePtr returns the pointed-to value, or the (optional) default / zero
// value when the pointer is nil.
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	if len(defaults) > 0 {
		return defaults[0]
	}
	var zero T
	return zero
}

func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]bool, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// ParseAmount parses a money cell the way accountant spreadsheets write it:
// currency symbol and thousands separators stripped. Returns nil for blank,
// unparseable or exactly-zero values (those cells are noise, not data).
func ParseAmount(value string) *decimal.Decimal {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return nil
	}
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	if dec.IsZero() {
		return nil
	}
	return &dec
}
