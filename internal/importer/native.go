package importer

import (
	"io"

	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/storage"
)

// NativeParser reads files written by "finboard export". Stored IDs and
// creation times are dropped; the ledger assigns fresh ones.
type NativeParser struct{}

// Format returns the parser name.
func (p *NativeParser) Format() string { return "finboard" }

// KeepsCategories reports that exported rows carry the user's categories.
func (p *NativeParser) KeepsCategories() bool { return true }

// Parse reads a finboard ledger CSV.
func (p *NativeParser) Parse(r io.Reader) ([]ledger.NewTransactionParams, error) {
	txns, err := storage.ReadTransactions(r)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, nil
	}
	ps := make([]ledger.NewTransactionParams, len(txns))
	for i, t := range txns {
		ps[i] = ledger.NewTransactionParams{
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    t.Category,
			Account:     t.Account,
			Reference:   t.Reference,
		}
	}
	return ps, nil
}
