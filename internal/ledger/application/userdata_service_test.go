package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/infrastructure"
)

func newTestUserData(t *testing.T) (*UserDataService, *infrastructure.MockAccountRepository, *infrastructure.MockUserDataRepository) {
	t.Helper()
	accounts := infrastructure.NewMockAccountRepository()
	userData := infrastructure.NewMockUserDataRepository()
	return NewUserDataService(userData, accounts), accounts, userData
}

func TestGetOrInit_SeedsDefaultBudgetTable(t *testing.T) {
	service, _, _ := newTestUserData(t)

	data, err := service.GetOrInit(testUserID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, data.UserID)
	assert.Equal(t, float64(0), data.MonthlyIncome)

	budget, err := service.GetBudget(testUserID)
	require.NoError(t, err)
	require.Len(t, budget, 9)

	expected := map[string]float64{
		"monthlyBudget":  61000,
		"foodDining":     15000,
		"transportation": 8000,
		"shopping":       10000,
		"entertainment":  5000,
		"billsUtilities": 12000,
		"healthcare":     5000,
		"education":      3000,
		"personalCare":   3000,
	}
	for _, category := range budget {
		assert.Equal(t, expected[category.Key], category.Budget, "budget for %s", category.Key)
		assert.Equal(t, float64(0), category.Spent, "spent for %s", category.Key)
	}
}

func TestGetOrInit_IsIdempotent(t *testing.T) {
	service, _, userData := newTestUserData(t)

	first, err := service.GetOrInit(testUserID)
	require.NoError(t, err)

	require.NoError(t, userData.AdjustBudgetSpent(nil, testUserID, "shopping", 500))

	second, err := service.GetOrInit(testUserID)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)

	budget, err := service.GetBudget(testUserID)
	require.NoError(t, err)
	for _, category := range budget {
		if category.Key == "shopping" {
			assert.Equal(t, float64(500), category.Spent, "re-initialization must not reset spend")
		}
	}
}

func TestRefreshSummary_DerivesFiguresFromState(t *testing.T) {
	service, accounts, userData := newTestUserData(t)

	require.NoError(t, accounts.Save(&domain.Account{ID: "a1", UserID: testUserID, Name: "Main", Type: domain.AccountTypeChecking, Balance: 40000}))
	require.NoError(t, accounts.Save(&domain.Account{ID: "a2", UserID: testUserID, Name: "Savings", Type: domain.AccountTypeSavings, Balance: 25000}))
	require.NoError(t, accounts.Save(&domain.Account{ID: "a3", UserID: testUserID, Name: "Card", Type: domain.AccountTypeCredit, Balance: -8000}))

	_, err := service.GetOrInit(testUserID)
	require.NoError(t, err)
	require.NoError(t, userData.SetMonthlyTotals(nil, testUserID, 50000, 20000))
	require.NoError(t, userData.AdjustBudgetSpent(nil, testUserID, "foodDining", 12200))
	require.NoError(t, userData.AdjustBudgetSpent(nil, testUserID, "transportation", 6100))

	data, err := service.RefreshSummary(testUserID)
	require.NoError(t, err)

	// Credit balances are liabilities, not part of total balance.
	assert.Equal(t, float64(65000), data.TotalBalance)
	assert.Equal(t, float64(60), data.SavingRate)
	assert.Equal(t, float64(30), data.BudgetUsed) // 18300 of 61000
	assert.Equal(t, float64(65), data.FinancialHealth)
}

func TestRefreshSummary_ZeroIncomeYieldsZeroSavingRate(t *testing.T) {
	service, _, _ := newTestUserData(t)

	data, err := service.RefreshSummary(testUserID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), data.SavingRate)
	assert.Equal(t, float64(0), data.BudgetUsed)
}
