package ledger

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/model"
)

var testNow = time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}

func ids(txns []model.Transaction) []int64 {
	out := make([]int64, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

// twoTxns is the two-record store used by the worked examples.
func twoTxns() []model.Transaction {
	return []model.Transaction{
		{ID: 1, Date: date("2024-09-14"), Description: "Monthly Salary Payment", Amount: dec("85000"), Type: model.TypeCredit, Category: model.CategoryIncome, Account: "SBI Current Account", Reference: "SAL/2024/09/001"},
		{ID: 2, Date: date("2024-09-13"), Description: "Office Supplies Purchase", Amount: dec("2500"), Type: model.TypeDebit, Category: model.CategoryOffice, Account: "Petty Cash", Reference: "PO/2024/156"},
	}
}

func newTestStore(txns []model.Transaction) *Store {
	s := NewStore(txns, id.NewGeneratorWithClock(func() time.Time { return testNow }))
	s.clock = func() time.Time { return testNow }
	return s
}

func newTestService(txns []model.Transaction, opts Options) *Service {
	opts.Logger = zerolog.Nop()
	opts.Clock = func() time.Time { return testNow }
	return NewService(newTestStore(txns), opts)
}
