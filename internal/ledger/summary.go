package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

// Summary aggregates a list of transactions.
type Summary struct {
	TransactionCount int
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetAmount        decimal.Decimal
}

// Summarize totals credits as income and debits as expense in a single pass.
func Summarize(txns []model.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case model.TypeCredit:
			income = income.Add(t.Amount)
		case model.TypeDebit:
			expense = expense.Add(t.Amount)
		}
	}
	return Summary{
		TransactionCount: len(txns),
		TotalIncome:      income,
		TotalExpense:     expense,
		NetAmount:        income.Sub(expense),
	}
}

// Totals compares the visible view with the whole store.
type Totals struct {
	Visible int
	Total   int
}

// Filtered reports whether the view hides any transactions.
func (t Totals) Filtered() bool {
	return t.Visible != t.Total
}
