package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionForm_Normalize(t *testing.T) {
	form := TransactionForm{
		Title:       "  Salary  ",
		Amount:      "50000.00",
		Kind:        "income",
		Category:    "salary",
		Description: " January payout ",
		Date:        "2024-01-01",
	}

	tx := form.Normalize()

	assert.Equal(t, "Salary", tx.Title)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("50000.00")))
	assert.Equal(t, KindIncome, tx.Kind)
	assert.Equal(t, CategorySalary, tx.Category)
	assert.Equal(t, "January payout", tx.Description)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Zero(t, tx.UserID, "normalization must never assign an owner")
}

func TestTransactionForm_NormalizeDefaultsDateToToday(t *testing.T) {
	form := TransactionForm{
		Title:    "Groceries",
		Amount:   "1500.50",
		Kind:     "expense",
		Category: "food",
	}

	tx := form.Normalize()
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), tx.Date.Format("2006-01-02"))
}

func TestFormFromTransaction(t *testing.T) {
	tx := &Transaction{
		Title:       "Groceries",
		Amount:      decimal.RequireFromString("1500.5"),
		Kind:        KindExpense,
		Category:    CategoryFood,
		Description: "weekly shop",
		Date:        time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	form := FormFromTransaction(tx)

	assert.Equal(t, "Groceries", form.Title)
	assert.Equal(t, "1500.50", form.Amount, "amounts render with two decimals")
	assert.Equal(t, "expense", form.Kind)
	assert.Equal(t, "food", form.Category)
	assert.Equal(t, "2024-01-02", form.Date)
}

func TestFieldErrors(t *testing.T) {
	var errs FieldErrors
	assert.True(t, errs.Empty())
	assert.Equal(t, "", errs.Get("title"))

	errs.Add("title", "This field is required.")
	errs.Add("title", "duplicate message is dropped")
	errs.Add("amount", "Enter a non-negative amount with at most two decimal places.")

	assert.False(t, errs.Empty())
	assert.Len(t, errs, 2)
	assert.Equal(t, "This field is required.", errs.Get("title"))
}

func TestValidKindAndCategory(t *testing.T) {
	assert.True(t, ValidKind("income"))
	assert.True(t, ValidKind("expense"))
	assert.False(t, ValidKind("transfer"))

	for _, c := range Categories {
		assert.True(t, ValidCategory(string(c)))
	}
	assert.False(t, ValidCategory("gambling"))
}
