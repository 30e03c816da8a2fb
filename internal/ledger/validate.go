package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a transaction ID is not in the store.
var ErrNotFound = errors.New("transaction not found")

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateNew checks the fields of a transaction about to be added.
func ValidateNew(p NewTransactionParams) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(p.Description) == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "must not be empty"})
	}
	if p.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Message: "is required"})
	}
	errs = append(errs, validateAmount(p.Amount)...)
	if !p.Type.Valid() {
		errs = append(errs, ValidationError{Field: "type", Message: fmt.Sprintf("unknown type %q", p.Type)})
	}
	if !p.Category.Valid() {
		errs = append(errs, ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", p.Category)})
	}

	return errs
}

// ValidateUpdate checks the fields an edit would change.
func ValidateUpdate(u TransactionUpdate) []ValidationError {
	var errs []ValidationError

	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "must not be empty"})
	}
	if u.Amount != nil {
		errs = append(errs, validateAmount(*u.Amount)...)
	}
	if u.Category != nil && !u.Category.Valid() {
		errs = append(errs, ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", *u.Category)})
	}

	return errs
}

// MaxAmountPlaces is the number of decimal places an amount may carry.
const MaxAmountPlaces = 2

func validateAmount(a decimal.Decimal) []ValidationError {
	if a.IsNegative() {
		return []ValidationError{{Field: "amount", Message: fmt.Sprintf("%s is negative", a)}}
	}
	if !a.Equal(a.Round(MaxAmountPlaces)) {
		return []ValidationError{{Field: "amount", Message: fmt.Sprintf("%s has more than %d decimal places", a, MaxAmountPlaces)}}
	}
	return nil
}

func joinValidation(verrs []ValidationError) error {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
