package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction as money in or money out.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Category is one of a fixed, closed set of transaction categories.
type Category string

const (
	CategorySalary        Category = "salary"
	CategoryBusiness      Category = "business"
	CategoryInvestment    Category = "investment"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order. Templates range
// over it to build the <select> options.
var Categories = []Category{
	CategorySalary,
	CategoryBusiness,
	CategoryInvestment,
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

func ValidKind(s string) bool {
	return s == string(KindIncome) || s == string(KindExpense)
}

func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == string(c) {
			return true
		}
	}
	return false
}

// Transaction is a single income or expense record owned by exactly one user.
// UserID is always set from the authenticated session, never from form input,
// and every query against the store is scoped by it.
type Transaction struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionFilter is an explicit filter specification consumed by the
// transaction repository. Empty fields impose no restriction; present fields
// are AND-ed together. It can only narrow a listing, never widen it beyond
// the owning user.
type TransactionFilter struct {
	Search   string // case-insensitive substring over title OR description
	Kind     string // exact match on kind
	Category string // exact match on category
}

// IsZero reports whether the filter restricts anything at all.
func (f TransactionFilter) IsZero() bool {
	return f.Search == "" && f.Kind == "" && f.Category == ""
}
