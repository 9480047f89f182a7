package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"go-fintrack/logger"
	"go-fintrack/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for transaction database
// operations. Every method is scoped to an owning user: no call can read or
// touch another user's rows.
type ITransactionRepository interface {
	CreateTransaction(t *model.Transaction) error
	GetTransactionByID(userID, id int) (*model.Transaction, error)
	GetTransactionsByUserID(userID int, filter model.TransactionFilter) ([]*model.Transaction, error)
	UpdateTransaction(t *model.Transaction) error
	DeleteTransaction(userID, id int) error
	GetSummaryByUserID(userID int) (income, expense decimal.Decimal, count int, err error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

const transactionColumns = `id, user_id, title, amount, kind, category, description, date, created_at, updated_at`

func (r *TransactionRepository) CreateTransaction(t *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": t.UserID,
		"kind":    t.Kind,
		"amount":  t.Amount.StringFixed(2),
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions (user_id, title, amount, kind, category, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		t.UserID, t.Title, t.Amount, t.Kind, t.Category, t.Description, t.Date,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// GetTransactionByID retrieves a single transaction owned by the given user.
// A row owned by someone else is indistinguishable from a missing row: both
// return sql.ErrNoRows.
func (r *TransactionRepository) GetTransactionByID(userID, id int) (*model.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 AND user_id = $2`, transactionColumns)

	t := &model.Transaction{}
	err := r.DB.QueryRow(query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Kind, &t.Category,
		&t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("transaction_id", id).Error("Failed to execute get transaction query")
		}
		return nil, err
	}
	return t, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search terms so
// they match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// GetTransactionsByUserID returns the user's transactions matching every
// present filter predicate, most recent date first, creation time as the
// tiebreaker. Empty filter fields impose no restriction.
func (r *TransactionRepository) GetTransactionsByUserID(userID int, filter model.TransactionFilter) ([]*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  userID,
		"filtered": !filter.IsZero(),
	})
	log.Info("Executing query to list transactions")

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE user_id = $1`, transactionColumns)
	args := []interface{}{userID}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		args = append(args, pattern)
		query += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(` AND kind = $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute list transactions query")
		return nil, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		t := &model.Transaction{}
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Kind, &t.Category,
			&t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// UpdateTransaction rewrites the mutable fields of a transaction the user
// owns and refreshes updated_at. Returns sql.ErrNoRows when the row does not
// exist or belongs to another user.
func (r *TransactionRepository) UpdateTransaction(t *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":        t.UserID,
		"transaction_id": t.ID,
	})
	log.Info("Executing query to update a transaction")

	query := `UPDATE transactions
		SET title = $1, amount = $2, kind = $3, category = $4, description = $5, date = $6, updated_at = now()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		t.Title, t.Amount, t.Kind, t.Category, t.Description, t.Date, t.ID, t.UserID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update transaction query")
		}
		return err
	}
	return nil
}

// DeleteTransaction removes a transaction the user owns. Returns
// sql.ErrNoRows when the row does not exist or belongs to another user.
func (r *TransactionRepository) DeleteTransaction(userID, id int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":        userID,
		"transaction_id": id,
	})
	log.Info("Executing query to delete a transaction")

	result, err := r.DB.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete transaction query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetSummaryByUserID computes the user's income and expense totals and the
// record count in a single aggregate query. NUMERIC keeps the sums exact.
func (r *TransactionRepository) GetSummaryByUserID(userID int) (decimal.Decimal, decimal.Decimal, int, error) {
	query := `SELECT
		COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
		COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0),
		COUNT(*)
		FROM transactions WHERE user_id = $1`

	var income, expense decimal.Decimal
	var count int
	err := r.DB.QueryRow(query, userID).Scan(&income, &expense, &count)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute summary query")
		return decimal.Zero, decimal.Zero, 0, err
	}
	return income, expense, count, nil
}
