package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldError is a single validation failure tied to a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the ordered list of validation failures for one submission.
type FieldErrors []FieldError

func (e FieldErrors) Empty() bool { return len(e) == 0 }

// Add appends a failure, keeping at most one message per field so templates
// can render errors inline next to the offending input.
func (e *FieldErrors) Add(field, message string) {
	for _, fe := range *e {
		if fe.Field == field {
			return
		}
	}
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Get returns the message for a field, or "" if the field is valid.
func (e FieldErrors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// RegisterForm is the account creation payload. Field names in the `form`
// tags match the HTML input names and the keys of returned FieldErrors.
type RegisterForm struct {
	Username        string `form:"username" validate:"required,notblank,min=3,max=50"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

// LoginForm is the session establishment payload.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TransactionForm carries the raw string inputs of a create/update
// submission. It deliberately has no owner field: the owner is always
// injected from the authenticated session at the call site.
type TransactionForm struct {
	Title       string `form:"title" validate:"required,notblank,max=200"`
	Amount      string `form:"amount" validate:"required,amount"`
	Kind        string `form:"kind" validate:"required,oneof=income expense"`
	Category    string `form:"category" validate:"required,oneof=salary business investment food transport utilities entertainment healthcare education other"`
	Description string `form:"description" validate:"max=1000"`
	Date        string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// Normalize converts a validated form into a Transaction ready for
// persistence. It must only be called after validation has passed; an empty
// date defaults to today.
func (f TransactionForm) Normalize() Transaction {
	amount, _ := decimal.NewFromString(strings.TrimSpace(f.Amount))

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if f.Date != "" {
		date, _ = time.Parse("2006-01-02", f.Date)
	}

	return Transaction{
		Title:       strings.TrimSpace(f.Title),
		Amount:      amount,
		Kind:        TransactionKind(f.Kind),
		Category:    Category(f.Category),
		Description: strings.TrimSpace(f.Description),
		Date:        date,
	}
}

// FormFromTransaction pre-fills an update form from a stored record.
func FormFromTransaction(t *Transaction) TransactionForm {
	return TransactionForm{
		Title:       t.Title,
		Amount:      t.Amount.StringFixed(2),
		Kind:        string(t.Kind),
		Category:    string(t.Category),
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
	}
}
