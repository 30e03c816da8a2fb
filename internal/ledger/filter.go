package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

// Criteria are the raw filter inputs. Empty fields match everything.
type Criteria struct {
	SearchTerm string // description or reference, case-insensitive substring
	DateFrom   string // inclusive, YYYY-MM-DD
	DateTo     string // inclusive, YYYY-MM-DD
	Category   string // exact category value
	Account    string // case-insensitive substring
	AmountMin  string // inclusive decimal
	AmountMax  string // inclusive decimal
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Invalid returns the names of bounds that are set but cannot be parsed.
// Filter ignores such bounds instead of excluding every transaction.
func (c Criteria) Invalid() []string {
	var bad []string
	if _, ok, set := parseDateBound(c.DateFrom); set && !ok {
		bad = append(bad, "dateFrom")
	}
	if _, ok, set := parseDateBound(c.DateTo); set && !ok {
		bad = append(bad, "dateTo")
	}
	if _, ok, set := parseAmountBound(c.AmountMin); set && !ok {
		bad = append(bad, "amountMin")
	}
	if _, ok, set := parseAmountBound(c.AmountMax); set && !ok {
		bad = append(bad, "amountMax")
	}
	return bad
}

// matcher is Criteria with its bounds parsed once.
type matcher struct {
	search    string
	category  string
	account   string
	dateFrom  *time.Time
	dateTo    *time.Time
	amountMin *decimal.Decimal
	amountMax *decimal.Decimal
}

func (c Criteria) compile() matcher {
	m := matcher{
		search:   strings.ToLower(c.SearchTerm),
		category: c.Category,
		account:  strings.ToLower(c.Account),
	}
	if d, ok, _ := parseDateBound(c.DateFrom); ok {
		m.dateFrom = &d
	}
	if d, ok, _ := parseDateBound(c.DateTo); ok {
		m.dateTo = &d
	}
	if a, ok, _ := parseAmountBound(c.AmountMin); ok {
		m.amountMin = &a
	}
	if a, ok, _ := parseAmountBound(c.AmountMax); ok {
		m.amountMax = &a
	}
	return m
}

func (m matcher) match(t model.Transaction) bool {
	if m.search != "" &&
		!strings.Contains(strings.ToLower(t.Description), m.search) &&
		!strings.Contains(strings.ToLower(t.Reference), m.search) {
		return false
	}
	if m.dateFrom != nil && t.Date.Before(*m.dateFrom) {
		return false
	}
	if m.dateTo != nil && t.Date.After(*m.dateTo) {
		return false
	}
	if m.category != "" && string(t.Category) != m.category {
		return false
	}
	if m.account != "" && !strings.Contains(strings.ToLower(t.Account), m.account) {
		return false
	}
	if m.amountMin != nil && t.Amount.LessThan(*m.amountMin) {
		return false
	}
	if m.amountMax != nil && t.Amount.GreaterThan(*m.amountMax) {
		return false
	}
	return true
}

// Filter returns the transactions matching every set criterion, in input order.
// The input is not modified.
func Filter(txns []model.Transaction, c Criteria) []model.Transaction {
	m := c.compile()
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if m.match(t) {
			out = append(out, t)
		}
	}
	return out
}

// parseDateBound returns the parsed bound, whether it parsed, and whether it was set at all.
func parseDateBound(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, false, true
	}
	return d, true, true
}

func parseAmountBound(s string) (decimal.Decimal, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, false
	}
	a, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, true
	}
	return a, true, true
}
