package models

import (
	"github.com/shopspring/decimal"
)

// TransactionSummary is the rollup over a set of transactions.
//
// Transfers count against the expense side: money moved to an account
// that is not tracked here has left the ledger, so it reduces the net
// amount exactly like an expense does. TotalTransfers is still reported
// separately.
type TransactionSummary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome" example:"2500"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses" example:"732.12"`
	TotalTransfers   decimal.Decimal `json:"totalTransfers" example:"100"`
	NetAmount        decimal.Decimal `json:"netAmount" example:"1767.88"`
	TransactionCount int             `json:"transactionCount" example:"18"`
	IncomeCount      int             `json:"incomeCount" example:"2"`
	ExpenseCount     int             `json:"expenseCount" example:"15"`
	TransferCount    int             `json:"transferCount" example:"1"`
}

// Summarize computes the rollup for the transactions passed.
//
// Filtering the transaction set is the caller's concern, Summarize
// aggregates whatever it is given.
func Summarize(transactions []Transaction) TransactionSummary {
	summary := TransactionSummary{
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		TotalTransfers: decimal.Zero,
	}

	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			summary.IncomeCount++
		case TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
			summary.ExpenseCount++
		case TransactionTypeTransfer:
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
			summary.TotalTransfers = summary.TotalTransfers.Add(t.Amount)
			summary.TransferCount++
		}
	}

	summary.TransactionCount = len(transactions)
	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalExpenses)

	return summary
}
