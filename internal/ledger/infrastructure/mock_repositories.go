package infrastructure

import (
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

// In-memory repositories used by the application layer tests.

type MockTx struct{}

func (t *MockTx) Commit() error   { return nil }
func (t *MockTx) Rollback() error { return nil }

type MockTransactionRepository struct {
	Transactions []domain.Transaction
}

func (m *MockTransactionRepository) BeginTransaction() (domain.Tx, error) {
	return &MockTx{}, nil
}

func (m *MockTransactionRepository) Save(_ domain.Tx, transaction domain.Transaction) error {
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) FindByID(userID, transactionID string) (*domain.Transaction, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			transaction := m.Transactions[i]
			return &transaction, nil
		}
	}
	return nil, ledgerErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) FindByUser(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		if !filter.StartDate.IsZero() && transaction.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && transaction.Date.After(filter.EndDate) {
			continue
		}
		transactions = append(transactions, transaction)
		if filter.Limit > 0 && len(transactions) == filter.Limit {
			break
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Delete(_ domain.Tx, userID, transactionID string) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].UserID == userID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return ledgerErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) SumByType(_ domain.Tx, userID, transactionType string, startDate, endDate time.Time) (float64, error) {
	var total float64
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || transaction.Type != transactionType {
			continue
		}
		if transaction.Date.Before(startDate) || !transaction.Date.Before(endDate) {
			continue
		}
		total += transaction.Amount
	}
	return total, nil
}

func (m *MockTransactionRepository) SpendingByCategory(userID string, startDate, endDate time.Time) ([]domain.CategorySpend, error) {
	totals := make(map[string]*domain.CategorySpend)
	var order []string
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || transaction.Type != domain.TypeExpense {
			continue
		}
		if transaction.Date.Before(startDate) || transaction.Date.After(endDate) {
			continue
		}
		spend, ok := totals[transaction.Category]
		if !ok {
			spend = &domain.CategorySpend{Category: transaction.Category}
			totals[transaction.Category] = spend
			order = append(order, transaction.Category)
		}
		spend.Total += transaction.Amount
		spend.Count++
	}
	var spends []domain.CategorySpend
	for _, category := range order {
		spends = append(spends, *totals[category])
	}
	return spends, nil
}

func (m *MockTransactionRepository) MonthlyTrend(userID string, startDate time.Time) ([]domain.MonthlyFlow, error) {
	//TODO implement me
	panic("implement me")
}

func (m *MockTransactionRepository) DailySpending(userID string, startDate time.Time) ([]domain.DailySpend, error) {
	//TODO implement me
	panic("implement me")
}

type MockAccountRepository struct {
	Accounts map[string]*domain.Account
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{Accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Save(account *domain.Account) error {
	copied := *account
	m.Accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) FindByUser(userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) FindByID(userID, accountID string) (*domain.Account, error) {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, ledgerErrors.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *MockAccountRepository) Update(account domain.Account) error {
	existing, ok := m.Accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return ledgerErrors.ErrAccountNotFound
	}
	*existing = account
	return nil
}

func (m *MockAccountRepository) Delete(userID, accountID string) error {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return ledgerErrors.ErrAccountNotFound
	}
	delete(m.Accounts, accountID)
	return nil
}

func (m *MockAccountRepository) AdjustBalance(_ domain.Tx, userID, accountID string, delta float64) error {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return ledgerErrors.ErrAccountNotFound
	}
	account.Balance += delta
	return nil
}

type MockUserDataRepository struct {
	Data    map[string]*domain.UserData
	Budgets map[string]map[string]*domain.BudgetCategory
}

func NewMockUserDataRepository() *MockUserDataRepository {
	return &MockUserDataRepository{
		Data:    make(map[string]*domain.UserData),
		Budgets: make(map[string]map[string]*domain.BudgetCategory),
	}
}

func (m *MockUserDataRepository) Find(userID string) (*domain.UserData, error) {
	data, ok := m.Data[userID]
	if !ok {
		return nil, ledgerErrors.ErrUserDataNotFound
	}
	copied := *data
	return &copied, nil
}

func (m *MockUserDataRepository) Init(userID string) (*domain.UserData, error) {
	if _, ok := m.Data[userID]; !ok {
		m.Data[userID] = &domain.UserData{UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
		budgets := make(map[string]*domain.BudgetCategory, len(domain.DefaultBudgets))
		for _, category := range domain.DefaultBudgets {
			copied := category
			budgets[category.Key] = &copied
		}
		m.Budgets[userID] = budgets
	}
	return m.Find(userID)
}

func (m *MockUserDataRepository) Update(userID string, update domain.UserDataUpdate) (*domain.UserData, error) {
	data, ok := m.Data[userID]
	if !ok {
		return nil, ledgerErrors.ErrUserDataNotFound
	}
	if update.TotalBalance != nil {
		data.TotalBalance = *update.TotalBalance
	}
	if update.MonthlyIncome != nil {
		data.MonthlyIncome = *update.MonthlyIncome
	}
	if update.MonthlyExpenses != nil {
		data.MonthlyExpenses = *update.MonthlyExpenses
	}
	if update.SavingRate != nil {
		data.SavingRate = *update.SavingRate
	}
	if update.FinancialHealth != nil {
		data.FinancialHealth = *update.FinancialHealth
	}
	if update.BudgetUsed != nil {
		data.BudgetUsed = *update.BudgetUsed
	}
	return m.Find(userID)
}

func (m *MockUserDataRepository) ListUserIDs() ([]string, error) {
	var ids []string
	for id := range m.Data {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockUserDataRepository) FindBudgetCategories(userID string) ([]domain.BudgetCategory, error) {
	budgets, ok := m.Budgets[userID]
	if !ok {
		return nil, ledgerErrors.ErrUserDataNotFound
	}
	var categories []domain.BudgetCategory
	for _, defaults := range domain.DefaultBudgets {
		if category, ok := budgets[defaults.Key]; ok {
			categories = append(categories, *category)
		}
	}
	return categories, nil
}

func (m *MockUserDataRepository) SetMonthlyTotals(_ domain.Tx, userID string, income, expenses float64) error {
	data, ok := m.Data[userID]
	if !ok {
		return ledgerErrors.ErrUserDataNotFound
	}
	data.MonthlyIncome = income
	data.MonthlyExpenses = expenses
	return nil
}

func (m *MockUserDataRepository) AdjustBudgetSpent(_ domain.Tx, userID, categoryKey string, delta float64) error {
	budgets, ok := m.Budgets[userID]
	if !ok {
		return ledgerErrors.ErrUserDataNotFound
	}
	category, ok := budgets[categoryKey]
	if !ok {
		return nil
	}
	category.Spent += delta
	if category.Spent < 0 {
		category.Spent = 0
	}
	return nil
}

func (m *MockUserDataRepository) SaveSummary(userID string, totalBalance, savingRate, financialHealth, budgetUsed float64) error {
	data, ok := m.Data[userID]
	if !ok {
		return ledgerErrors.ErrUserDataNotFound
	}
	data.TotalBalance = totalBalance
	data.SavingRate = savingRate
	data.FinancialHealth = financialHealth
	data.BudgetUsed = budgetUsed
	return nil
}
