package interfaces

import (
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
)

// MockLedgerService records mutations and returns Err from every call when set.
type MockLedgerService struct {
	Err          error
	Transactions []domain.Transaction
	Deleted      []string
}

func (m *MockLedgerService) CreateIncome(transaction *domain.Transaction) error {
	return m.create(transaction, domain.TypeIncome)
}

func (m *MockLedgerService) CreateExpense(transaction *domain.Transaction) error {
	return m.create(transaction, domain.TypeExpense)
}

func (m *MockLedgerService) CreateTransfer(transaction *domain.Transaction) error {
	return m.create(transaction, domain.TypeTransfer)
}

func (m *MockLedgerService) create(transaction *domain.Transaction, transactionType string) error {
	if m.Err != nil {
		return m.Err
	}
	transaction.ID = "generated-id"
	transaction.Type = transactionType
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockLedgerService) DeleteTransaction(userID, transactionID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, transactionID)
	return nil
}

func (m *MockLedgerService) GetUserTransactions(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transactions, nil
}

func (m *MockLedgerService) GetRecentTransactions(userID string) ([]domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Transactions, nil
}
