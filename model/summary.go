package model

import "github.com/shopspring/decimal"

// DashboardSummary aggregates a user's full transaction set. All monetary
// fields are exact decimals; Balance may be negative.
type DashboardSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
	Recent       []*Transaction  `json:"recent"`
}
