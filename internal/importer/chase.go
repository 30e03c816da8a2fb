package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Account labels every
// imported row; it may be empty.
type ChaseParser struct {
	Account string
}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV. Signed amounts become a type and an absolute amount:
// deposits are income credits, withdrawals expense debits.
func (p *ChaseParser) Parse(r io.Reader) ([]ledger.NewTransactionParams, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var ps []ledger.NewTransactionParams
	for i, rec := range records[1:] {
		row, err := p.parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ps = append(ps, row)
	}
	return ps, nil
}

func (p *ChaseParser) parseRow(rec []string) (ledger.NewTransactionParams, error) {
	date, err := time.ParseInLocation(chaseDateFormat, rec[chaseColDate], time.UTC)
	if err != nil {
		return ledger.NewTransactionParams{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(rec[chaseColAmount])
	if err != nil {
		return ledger.NewTransactionParams{}, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}

	typ, category := model.TypeCredit, model.CategoryIncome
	if amount.IsNegative() {
		typ, category = model.TypeDebit, model.CategoryExpense
	}

	desc := strings.TrimSpace(rec[chaseColDesc])
	return ledger.NewTransactionParams{
		Date:        date,
		Description: desc,
		Amount:      amount.Abs(),
		Type:        typ,
		Category:    category,
		Account:     p.Account,
		Reference:   makeChaseRef(date, desc),
	}, nil
}

// makeChaseRef creates a reference like chase_20250103_GITHUBPROS.
func makeChaseRef(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("chase_%s_%s", date.Format("20060102"), prefix)
}
