package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-fintrack/logger"
	"go-fintrack/model"
	"go-fintrack/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrTransactionNotFound covers both a genuinely missing record and a record
// owned by another user. Collapsing the two avoids leaking the existence of
// other users' transactions.
var ErrTransactionNotFound = errors.New("transaction not found")

// recentLimit is how many transactions the dashboard shows.
const recentLimit = 5

const summaryCacheTTL = 10 * time.Minute

// TransactionService implements the transaction lifecycle, the filtered
// listing, and the dashboard aggregation with its Redis-backed cache.
type TransactionService struct {
	transactionRepo repository.ITransactionRepository
	cache           ICacheClient
}

func NewTransactionService(transactionRepo repository.ITransactionRepository, cache ICacheClient) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

func summaryCacheKey(userID int) string {
	return fmt.Sprintf("summary:%d", userID)
}

// CreateTransaction persists a new record for the given user. The owner is
// forced to userID regardless of anything the caller put in the record.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID int, t model.Transaction) (*model.Transaction, error) {
	t.UserID = userID
	if err := s.transactionRepo.CreateTransaction(&t); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx, userID)
	return &t, nil
}

// ListTransactions returns the user's transactions narrowed by the filter,
// in default ordering. The filter can only restrict within the owner's set.
func (s *TransactionService) ListTransactions(userID int, filter model.TransactionFilter) ([]*model.Transaction, error) {
	return s.transactionRepo.GetTransactionsByUserID(userID, filter)
}

// GetTransactionForUser fetches one record scoped to its owner. This backs
// the update-form prefill and the "describe pending deletion" step of the
// two-phase delete.
func (s *TransactionService) GetTransactionForUser(userID, id int) (*model.Transaction, error) {
	t, err := s.transactionRepo.GetTransactionByID(userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// UpdateTransaction rewrites the mutable fields of a record the user owns.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id int, t model.Transaction) (*model.Transaction, error) {
	t.ID = id
	t.UserID = userID
	if err := s.transactionRepo.UpdateTransaction(&t); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	s.invalidateSummary(ctx, userID)
	return &t, nil
}

// DeleteTransaction commits a pending deletion. The confirmation step is
// GetTransactionForUser; this is the irreversible half.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id int) error {
	if err := s.transactionRepo.DeleteTransaction(userID, id); err != nil {
		if err == sql.ErrNoRows {
			return ErrTransactionNotFound
		}
		return err
	}
	s.invalidateSummary(ctx, userID)
	return nil
}

// GetDashboard computes the user's summary: exact income/expense totals,
// their balance, the record count and the 5 most recent transactions. The
// recent list always ignores search filters. Results are cached per user and
// invalidated on every write.
func (s *TransactionService) GetDashboard(ctx context.Context, userID int) (*model.DashboardSummary, error) {
	log := logger.Log.WithField("user_id", userID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, summaryCacheKey(userID)).Result()
		if err == nil {
			summary := &model.DashboardSummary{}
			if err := json.Unmarshal([]byte(cached), summary); err == nil {
				log.Info("Dashboard summary served from cache")
				return summary, nil
			}
			log.Warn("Discarding unreadable cached summary")
		} else if err != redis.Nil {
			log.WithError(err).Warn("Summary cache unavailable, falling back to database")
		}
	}

	income, expense, count, err := s.transactionRepo.GetSummaryByUserID(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactionsByUserID(userID, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	recent := transactions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	summary := &model.DashboardSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
		Count:        count,
		Recent:       recent,
	}

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey(userID), payload, summaryCacheTTL).Err(); err != nil {
				log.WithError(err).Warn("Failed to cache dashboard summary")
			}
		}
	}

	return summary, nil
}

func (s *TransactionService) invalidateSummary(ctx context.Context, userID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryCacheKey(userID)).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
		}).WithError(err).Warn("Failed to invalidate summary cache")
	}
}
