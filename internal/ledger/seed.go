package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

// Seed returns the sample transactions a fresh ledger starts with.
func Seed() []model.Transaction {
	return []model.Transaction{
		seed(1, "2024-09-14", "Monthly Salary Payment", 85000, model.TypeCredit, model.CategoryIncome, "SBI Current Account", "SAL/2024/09/001", "2024-09-14T05:04:08.471Z"),
		seed(2, "2024-09-13", "Office Supplies Purchase", 2500, model.TypeDebit, model.CategoryOffice, "Petty Cash", "PO/2024/156", "2024-09-13T10:30:00.000Z"),
		seed(3, "2024-09-12", "Electricity Bill Payment", 3200, model.TypeDebit, model.CategoryUtilities, "HDFC Savings Account", "ELEC/2024/08", "2024-09-12T14:15:30.000Z"),
		seed(4, "2024-09-11", "Client Payment Received", 45000, model.TypeCredit, model.CategoryIncome, "SBI Current Account", "INV/2024/089", "2024-09-11T09:45:00.000Z"),
		seed(5, "2024-09-10", "Marketing Campaign - Google Ads", 8500, model.TypeDebit, model.CategoryMarketing, "Credit Card", "GADS/2024/09", "2024-09-10T16:20:00.000Z"),
		seed(6, "2024-09-09", "Business Travel - Mumbai", 12000, model.TypeDebit, model.CategoryTravel, "Credit Card", "TRV/2024/023", "2024-09-09T08:30:00.000Z"),
		seed(7, "2024-09-08", "Investment in Mutual Funds", 25000, model.TypeDebit, model.CategoryInvestment, "Investment Account", "MF/2024/SIP/09", "2024-09-08T11:00:00.000Z"),
		seed(8, "2024-09-07", "GST Payment - Q2 2024", 15000, model.TypeDebit, model.CategoryTax, "SBI Current Account", "GST/2024/Q2", "2024-09-07T13:45:00.000Z"),
		seed(9, "2024-09-06", "Freelance Project Payment", 28000, model.TypeCredit, model.CategoryIncome, "HDFC Savings Account", "FRLNC/2024/034", "2024-09-06T15:30:00.000Z"),
		seed(10, "2024-09-05", "Internet & Phone Bill", 1800, model.TypeDebit, model.CategoryUtilities, "HDFC Savings Account", "INET/2024/08", "2024-09-05T12:15:00.000Z"),
	}
}

func seed(txnID int64, date, desc string, amount int64, typ model.TxnType, cat model.Category, account, ref, createdAt string) model.Transaction {
	d, err := model.ParseDate(date)
	if err != nil {
		panic("bad seed date " + date)
	}
	c, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		panic("bad seed timestamp " + createdAt)
	}
	return model.Transaction{
		ID:          txnID,
		Date:        d,
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
		Type:        typ,
		Category:    cat,
		Account:     account,
		Reference:   ref,
		CreatedAt:   c,
	}
}
