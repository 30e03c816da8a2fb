package accounts

import "github.com/finboard-dev/finboard/internal/model"

// Default returns the built-in account options.
func Default() []model.AccountOption {
	return []model.AccountOption{
		{Value: "cash", Label: "Cash Account"},
		{Value: "bank-sbi", Label: "SBI Current Account"},
		{Value: "bank-hdfc", Label: "HDFC Savings Account"},
		{Value: "credit-card", Label: "Credit Card"},
		{Value: "petty-cash", Label: "Petty Cash"},
		{Value: "investment", Label: "Investment Account"},
	}
}
