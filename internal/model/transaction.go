package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the ISO calendar date layout used for transaction dates.
const DateFormat = "2006-01-02"

// TxnType carries the direction of a transaction. Amounts are never signed.
type TxnType string

const (
	TypeCredit TxnType = "credit"
	TypeDebit  TxnType = "debit"
)

// Valid reports whether t is credit or debit.
func (t TxnType) Valid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Transaction is a single ledger entry.
type Transaction struct {
	ID          int64
	Date        time.Time       // calendar date, UTC midnight
	Description string
	Amount      decimal.Decimal // never negative; see Type
	Type        TxnType
	Category    Category
	Account     string // free-text label, not a foreign key
	Reference   string
	CreatedAt   time.Time
}

// IsCredit reports whether the transaction counts toward income.
func (t Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

// Signed returns the amount with the sign implied by Type: credits positive, debits negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// DateString returns the date in ISO form ("2024-09-14").
func (t Transaction) DateString() string {
	return t.Date.Format(DateFormat)
}

// ParseDate parses an ISO calendar date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
