package model

import (
	"fmt"
	"strings"
)

// Category is one of a fixed, closed set of transaction categories.
type Category string

const (
	CategoryIncome     Category = "income"
	CategoryExpense    Category = "expense"
	CategoryTransfer   Category = "transfer"
	CategoryInvestment Category = "investment"
	CategoryLoan       Category = "loan"
	CategoryTax        Category = "tax"
	CategoryUtilities  Category = "utilities"
	CategoryMarketing  Category = "marketing"
	CategoryOffice     Category = "office"
	CategoryTravel     Category = "travel"
)

var categoryLabels = map[Category]string{
	CategoryIncome:     "Income",
	CategoryExpense:    "Expense",
	CategoryTransfer:   "Transfer",
	CategoryInvestment: "Investment",
	CategoryLoan:       "Loan",
	CategoryTax:        "Tax",
	CategoryUtilities:  "Utilities",
	CategoryMarketing:  "Marketing",
	CategoryOffice:     "Office Supplies",
	CategoryTravel:     "Travel",
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryIncome,
		CategoryExpense,
		CategoryTransfer,
		CategoryInvestment,
		CategoryLoan,
		CategoryTax,
		CategoryUtilities,
		CategoryMarketing,
		CategoryOffice,
		CategoryTravel,
	}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human-readable name, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts a category value or label, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c, label := range categoryLabels {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, label) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
