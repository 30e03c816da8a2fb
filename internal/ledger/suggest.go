package ledger

import (
	"strings"

	"github.com/finboard-dev/finboard/internal/model"
)

// minSuggestLen is the shortest description worth matching.
const minSuggestLen = 4

// Suggestion is a proposed set of fields for a new transaction.
type Suggestion struct {
	Category model.Category
	Account  string
	Type     model.TxnType
}

// Suggester proposes fields from description keywords. The first matching rule wins.
type Suggester struct {
	rules []model.Rule
}

// NewSuggester creates a Suggester; a nil or empty rule list uses DefaultRules.
func NewSuggester(rules []model.Rule) *Suggester {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Suggester{rules: rules}
}

// Suggest returns the suggestion of the first rule with a keyword contained in description.
func (s *Suggester) Suggest(description string) (Suggestion, bool) {
	desc := strings.ToLower(strings.TrimSpace(description))
	if len(desc) < minSuggestLen {
		return Suggestion{}, false
	}
	for _, r := range s.rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(desc, strings.ToLower(kw)) {
				return Suggestion{Category: r.Category, Account: r.Account, Type: r.Type}, true
			}
		}
	}
	return Suggestion{}, false
}

// DefaultRules returns the built-in keyword rules.
func DefaultRules() []model.Rule {
	return []model.Rule{
		{Keywords: []string{"salary", "payment received"}, Category: model.CategoryIncome, Account: "bank-sbi", Type: model.TypeCredit},
		{Keywords: []string{"office", "supplies"}, Category: model.CategoryOffice, Account: "petty-cash", Type: model.TypeDebit},
		{Keywords: []string{"travel", "transport"}, Category: model.CategoryTravel, Account: "credit-card", Type: model.TypeDebit},
		{Keywords: []string{"electricity", "water", "internet"}, Category: model.CategoryUtilities, Account: "bank-hdfc", Type: model.TypeDebit},
		{Keywords: []string{"marketing", "advertisement"}, Category: model.CategoryMarketing, Account: "bank-sbi", Type: model.TypeDebit},
	}
}
