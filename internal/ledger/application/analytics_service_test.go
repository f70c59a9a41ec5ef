package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/infrastructure"
)

func TestGetSummary_AggregatesCurrentMonth(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			{UserID: testUserID, Type: domain.TypeExpense, Amount: 900, Category: "Food & Dining", Date: testNow.AddDate(0, 0, -3)},
			{UserID: testUserID, Type: domain.TypeExpense, Amount: 600, Category: "Shopping", Date: testNow.AddDate(0, 0, -1)},
			{UserID: testUserID, Type: domain.TypeIncome, Amount: 5000, Category: "Salary", Date: testNow.AddDate(0, 0, -10)},
			// Previous month, must not count.
			{UserID: testUserID, Type: domain.TypeExpense, Amount: 4000, Category: "Rent", Date: testNow.AddDate(0, -1, 0)},
		},
	}
	service := NewAnalyticsService(repo)
	service.now = func() time.Time { return testNow }

	summary, err := service.GetSummary(testUserID)
	require.NoError(t, err)

	assert.Equal(t, float64(1500), summary.TotalSpending)
	assert.Equal(t, float64(100), summary.AvgDailySpend) // 1500 over 15 days
	assert.Equal(t, float64(70), summary.SavingsRate)    // (5000-1500)/5000
	assert.Equal(t, "Food & Dining", summary.TopCategory)
}

func TestGetSummary_NoActivity(t *testing.T) {
	service := NewAnalyticsService(&infrastructure.MockTransactionRepository{})
	service.now = func() time.Time { return testNow }

	summary, err := service.GetSummary(testUserID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), summary.TotalSpending)
	assert.Equal(t, float64(0), summary.SavingsRate)
	assert.Equal(t, "N/A", summary.TopCategory)
}

func TestGetSpendingByCategory_DefaultsToCurrentMonth(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			{UserID: testUserID, Type: domain.TypeExpense, Amount: 100, Category: "Shopping", Date: testNow.AddDate(0, 0, -2)},
			{UserID: testUserID, Type: domain.TypeExpense, Amount: 40, Category: "Shopping", Date: testNow.AddDate(0, 0, -2)},
			{UserID: testUserID, Type: domain.TypeExpense, Amount: 70, Category: "Education", Date: testNow.AddDate(0, -3, 0)},
		},
	}
	service := NewAnalyticsService(repo)
	service.now = func() time.Time { return testNow }

	spends, err := service.GetSpendingByCategory(testUserID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, spends, 1)
	assert.Equal(t, "Shopping", spends[0].Category)
	assert.Equal(t, float64(140), spends[0].Total)
	assert.Equal(t, 2, spends[0].Count)
}
