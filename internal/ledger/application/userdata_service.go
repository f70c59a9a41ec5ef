package application

import (
	"log"
	"math"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

// UserDataService owns the per-user derived data. The cached summary figures
// are always recomputed from the ledger and the account set; no handler path
// mutates them incrementally.
type UserDataService struct {
	userData domain.UserDataRepository
	accounts domain.AccountRepository
}

func NewUserDataService(userData domain.UserDataRepository, accounts domain.AccountRepository) *UserDataService {
	return &UserDataService{userData: userData, accounts: accounts}
}

// GetOrInit returns the user's data, seeding the default budget table on
// first access.
func (s *UserDataService) GetOrInit(userID string) (*domain.UserData, error) {
	data, err := s.userData.Find(userID)
	if ledgerErrors.IsNotFoundError(err) {
		return s.userData.Init(userID)
	}
	return data, err
}

func (s *UserDataService) UpdateUserData(userID string, update domain.UserDataUpdate) (*domain.UserData, error) {
	if _, err := s.GetOrInit(userID); err != nil {
		return nil, err
	}
	return s.userData.Update(userID, update)
}

func (s *UserDataService) GetBudget(userID string) ([]domain.BudgetCategory, error) {
	if _, err := s.GetOrInit(userID); err != nil {
		return nil, err
	}
	return s.userData.FindBudgetCategories(userID)
}

// RefreshSummary recomputes the cached summary figures from current state:
// total balance from the account set, saving rate from the month's rollups,
// budget used from the envelope table.
func (s *UserDataService) RefreshSummary(userID string) (*domain.UserData, error) {
	data, err := s.GetOrInit(userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	var totalBalance float64
	for _, account := range accounts {
		if account.Type != domain.AccountTypeCredit {
			totalBalance += account.Balance
		}
	}

	var savingRate float64
	if data.MonthlyIncome > 0 {
		savingRate = math.Round((data.MonthlyIncome - data.MonthlyExpenses) / data.MonthlyIncome * 100)
	}

	categories, err := s.userData.FindBudgetCategories(userID)
	if err != nil {
		return nil, err
	}
	var monthlyBudget, totalSpent float64
	for _, category := range categories {
		if category.Key == domain.BudgetKeyMonthly {
			monthlyBudget = category.Budget
			continue
		}
		totalSpent += category.Spent
	}
	var budgetUsed float64
	if monthlyBudget > 0 {
		budgetUsed = math.Round(totalSpent / monthlyBudget * 100)
	}

	financialHealth := clampPercent((savingRate + (100 - budgetUsed)) / 2)

	if err := s.userData.SaveSummary(userID, totalBalance, savingRate, financialHealth, budgetUsed); err != nil {
		return nil, err
	}
	return s.userData.Find(userID)
}

// RefreshAllSummaries is run by the nightly scheduler.
func (s *UserDataService) RefreshAllSummaries() error {
	userIDs, err := s.userData.ListUserIDs()
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if _, err := s.RefreshSummary(userID); err != nil {
			log.Printf("Error refreshing summary for user %s: %v", userID, err)
		}
	}
	return nil
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
