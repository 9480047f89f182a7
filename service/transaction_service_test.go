// service/transaction_service_test.go
package service

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"go-fintrack/config"
	"go-fintrack/logger"
	"go-fintrack/model"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	config.AppConfig.Session.SecretKey = "test-secret-key"
	config.AppConfig.Session.CookieName = "fintrack_session"
	config.AppConfig.Session.TTLHours = 24
	os.Exit(m.Run())
}

// MockTransactionRepository is a mock for ITransactionRepository.
type MockTransactionRepository struct{ mock.Mock }

func (m *MockTransactionRepository) CreateTransaction(t *model.Transaction) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionByID(userID, id int) (*model.Transaction, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetTransactionsByUserID(userID int, filter model.TransactionFilter) ([]*model.Transaction, error) {
	args := m.Called(userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(t *model.Transaction) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(userID, id int) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetSummaryByUserID(userID int) (decimal.Decimal, decimal.Decimal, int, error) {
	args := m.Called(userID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Int(2), args.Error(3)
}

// fakeCache is an in-memory stand-in for the Redis client.
type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := c.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.store[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(c.store, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionService_GetDashboard(t *testing.T) {
	ctx := context.Background()

	salary := &model.Transaction{
		ID: 1, UserID: 1, Title: "Salary",
		Amount: decimal.RequireFromString("50000.00"),
		Kind:   model.KindIncome, Category: model.CategorySalary,
		Date: day(2024, 1, 1),
	}
	groceries := &model.Transaction{
		ID: 2, UserID: 1, Title: "Groceries",
		Amount: decimal.RequireFromString("1500.50"),
		Kind:   model.KindExpense, Category: model.CategoryFood,
		Date: day(2024, 1, 2),
	}

	t.Run("totals, balance, count and recent ordering", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetSummaryByUserID", 1).
			Return(decimal.RequireFromString("50000.00"), decimal.RequireFromString("1500.50"), 2, nil).Once()
		// Default ordering: most recent date first.
		mockRepo.On("GetTransactionsByUserID", 1, model.TransactionFilter{}).
			Return([]*model.Transaction{groceries, salary}, nil).Once()

		svc := NewTransactionService(mockRepo, nil)
		summary, err := svc.GetDashboard(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, summary.TotalIncome.Equal(decimal.RequireFromString("50000.00")))
		assert.True(t, summary.TotalExpense.Equal(decimal.RequireFromString("1500.50")))
		assert.True(t, summary.Balance.Equal(decimal.RequireFromString("48499.50")))
		assert.Equal(t, 2, summary.Count)
		assert.Len(t, summary.Recent, 2)
		assert.Equal(t, "Groceries", summary.Recent[0].Title)
		assert.Equal(t, "Salary", summary.Recent[1].Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("balance identity holds on the empty set", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetSummaryByUserID", 1).
			Return(decimal.Zero, decimal.Zero, 0, nil).Once()
		mockRepo.On("GetTransactionsByUserID", 1, model.TransactionFilter{}).
			Return([]*model.Transaction(nil), nil).Once()

		svc := NewTransactionService(mockRepo, nil)
		summary, err := svc.GetDashboard(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, summary.TotalIncome.IsZero())
		assert.True(t, summary.TotalExpense.IsZero())
		assert.True(t, summary.Balance.IsZero())
		assert.Zero(t, summary.Count)
		assert.Empty(t, summary.Recent)
	})

	t.Run("balance can go negative", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetSummaryByUserID", 1).
			Return(decimal.RequireFromString("100.00"), decimal.RequireFromString("250.25"), 2, nil).Once()
		mockRepo.On("GetTransactionsByUserID", 1, model.TransactionFilter{}).
			Return([]*model.Transaction{groceries, salary}, nil).Once()

		svc := NewTransactionService(mockRepo, nil)
		summary, err := svc.GetDashboard(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, summary.Balance.Equal(decimal.RequireFromString("-150.25")))
	})

	t.Run("recent is capped at five", func(t *testing.T) {
		var many []*model.Transaction
		for i := 0; i < 8; i++ {
			many = append(many, &model.Transaction{
				ID: i + 1, UserID: 1, Title: "t",
				Amount: decimal.New(int64(i+1), 0),
				Kind:   model.KindExpense, Category: model.CategoryOther,
				Date: day(2024, 1, 28-i),
			})
		}

		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetSummaryByUserID", 1).
			Return(decimal.Zero, decimal.RequireFromString("36"), 8, nil).Once()
		mockRepo.On("GetTransactionsByUserID", 1, model.TransactionFilter{}).
			Return(many, nil).Once()

		svc := NewTransactionService(mockRepo, nil)
		summary, err := svc.GetDashboard(ctx, 1)

		assert.NoError(t, err)
		assert.Len(t, summary.Recent, 5)
		assert.Equal(t, 8, summary.Count)
	})

	t.Run("summary is cached and invalidated on writes", func(t *testing.T) {
		cache := newFakeCache()
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetSummaryByUserID", 1).
			Return(decimal.RequireFromString("50000.00"), decimal.RequireFromString("1500.50"), 2, nil).Twice()
		mockRepo.On("GetTransactionsByUserID", 1, model.TransactionFilter{}).
			Return([]*model.Transaction{groceries, salary}, nil).Twice()
		mockRepo.On("CreateTransaction", mock.AnythingOfType("*model.Transaction")).Return(nil).Once()

		svc := NewTransactionService(mockRepo, cache)

		// Miss, then hit.
		first, err := svc.GetDashboard(ctx, 1)
		assert.NoError(t, err)
		second, err := svc.GetDashboard(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, first.Balance.Equal(second.Balance))
		assert.Equal(t, first.Count, second.Count)

		// A write invalidates; the next read recomputes.
		_, err = svc.CreateTransaction(ctx, 1, *groceries)
		assert.NoError(t, err)
		_, err = svc.GetDashboard(ctx, 1)
		assert.NoError(t, err)

		mockRepo.AssertExpectations(t)
	})
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("CreateTransaction", mock.MatchedBy(func(tx *model.Transaction) bool {
		return tx.UserID == 42
	})).Return(nil).Once()

	svc := NewTransactionService(mockRepo, nil)

	// The record claims a different owner; the service must override it.
	tx := model.Transaction{
		UserID: 7, Title: "Salary",
		Amount: decimal.RequireFromString("50000.00"),
		Kind:   model.KindIncome, Category: model.CategorySalary,
		Date: day(2024, 1, 1),
	}
	created, err := svc.CreateTransaction(context.Background(), 42, tx)

	assert.NoError(t, err)
	assert.Equal(t, 42, created.UserID)
	mockRepo.AssertExpectations(t)
}

func TestTransactionService_NotFoundMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("get maps no rows to not found", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetTransactionByID", 2, 7).Return(nil, sql.ErrNoRows).Once()

		svc := NewTransactionService(mockRepo, nil)
		_, err := svc.GetTransactionForUser(2, 7)
		assert.Equal(t, ErrTransactionNotFound, err)
	})

	t.Run("update maps no rows to not found", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("UpdateTransaction", mock.AnythingOfType("*model.Transaction")).
			Return(sql.ErrNoRows).Once()

		svc := NewTransactionService(mockRepo, nil)
		_, err := svc.UpdateTransaction(ctx, 2, 7, model.Transaction{Amount: decimal.Zero})
		assert.Equal(t, ErrTransactionNotFound, err)
	})

	t.Run("delete maps no rows to not found", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		mockRepo.On("DeleteTransaction", 2, 7).Return(sql.ErrNoRows).Once()

		svc := NewTransactionService(mockRepo, nil)
		err := svc.DeleteTransaction(ctx, 2, 7)
		assert.Equal(t, ErrTransactionNotFound, err)
	})
}

func TestTransactionService_ListTransactions(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	filter := model.TransactionFilter{Search: "sal", Kind: "income"}
	mockRepo.On("GetTransactionsByUserID", 1, filter).
		Return([]*model.Transaction{}, nil).Once()

	svc := NewTransactionService(mockRepo, nil)
	_, err := svc.ListTransactions(1, filter)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
