package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

// LedgerService keeps account balances, monthly rollups and budget-category
// spend consistent with the transaction log. Every mutating operation runs
// inside a single storage transaction: the transaction row, its postings and
// the rollup updates commit or roll back together.
type LedgerService struct {
	transactions domain.TransactionRepository
	accounts     domain.AccountRepository
	userData     domain.UserDataRepository
	now          func() time.Time
}

func NewLedgerService(
	transactions domain.TransactionRepository,
	accounts domain.AccountRepository,
	userData domain.UserDataRepository,
) *LedgerService {
	return &LedgerService{
		transactions: transactions,
		accounts:     accounts,
		userData:     userData,
		now:          time.Now,
	}
}

func (s *LedgerService) CreateIncome(transaction *domain.Transaction) error {
	transaction.Type = domain.TypeIncome
	return s.create(transaction)
}

func (s *LedgerService) CreateExpense(transaction *domain.Transaction) error {
	transaction.Type = domain.TypeExpense
	return s.create(transaction)
}

func (s *LedgerService) CreateTransfer(transaction *domain.Transaction) error {
	transaction.Type = domain.TypeTransfer
	if transaction.Category == "" {
		transaction.Category = "Transfer"
	}
	return s.create(transaction)
}

func (s *LedgerService) create(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if transaction.Date.IsZero() {
		transaction.Date = s.now()
	}
	if err := transaction.Validate(); err != nil {
		return err
	}

	// Every referenced account must exist and belong to the caller before any
	// mutation happens. A missing account fails the whole operation; a
	// transaction record must never be persisted with its postings skipped.
	if _, err := s.accounts.FindByID(transaction.UserID, transaction.SourceAccountID); err != nil {
		return err
	}
	if transaction.Type == domain.TypeTransfer {
		if _, err := s.accounts.FindByID(transaction.UserID, *transaction.DestinationAccountID); err != nil {
			return err
		}
	}
	if err := s.ensureUserData(transaction.UserID); err != nil {
		return err
	}

	tx, err := s.transactions.BeginTransaction()
	if err != nil {
		return err
	}
	if err := s.transactions.Save(tx, *transaction); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.applyPostings(tx, transaction, +1); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.applyBudgetRollup(tx, transaction, +1); err != nil {
		tx.Rollback()
		return err
	}
	if transaction.Type != domain.TypeTransfer {
		if err := s.recomputeMonthlyTotals(tx, transaction.UserID); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DeleteTransaction exactly reverses the transaction's effect on every touched
// account balance and rollup before removing the record.
func (s *LedgerService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.transactions.FindByID(userID, transactionID)
	if err != nil {
		return err
	}

	tx, err := s.transactions.BeginTransaction()
	if err != nil {
		return err
	}
	if err := s.applyPostings(tx, transaction, -1); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.applyBudgetRollup(tx, transaction, -1); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.transactions.Delete(tx, userID, transactionID); err != nil {
		tx.Rollback()
		return err
	}
	if transaction.Type != domain.TypeTransfer {
		if err := s.recomputeMonthlyTotals(tx, userID); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// applyPostings adjusts the affected account balances, sign +1 to apply and
// -1 to reverse. A transfer posts equal and opposite amounts, so the net
// balance across all accounts is unchanged.
func (s *LedgerService) applyPostings(tx domain.Tx, transaction *domain.Transaction, sign float64) error {
	amount := sign * transaction.Amount
	switch transaction.Type {
	case domain.TypeIncome:
		return s.accounts.AdjustBalance(tx, transaction.UserID, transaction.SourceAccountID, amount)
	case domain.TypeExpense:
		return s.accounts.AdjustBalance(tx, transaction.UserID, transaction.SourceAccountID, -amount)
	case domain.TypeTransfer:
		if err := s.accounts.AdjustBalance(tx, transaction.UserID, transaction.SourceAccountID, -amount); err != nil {
			return err
		}
		return s.accounts.AdjustBalance(tx, transaction.UserID, *transaction.DestinationAccountID, amount)
	}
	return ledgerErrors.ErrInvalidTransactionType
}

// applyBudgetRollup moves the matching budget envelope's spent figure for
// expenses. Categories without a mapping are not budget-tracked.
func (s *LedgerService) applyBudgetRollup(tx domain.Tx, transaction *domain.Transaction, sign float64) error {
	if transaction.Type != domain.TypeExpense {
		return nil
	}
	key, ok := domain.BudgetKeyForCategory(transaction.Category)
	if !ok {
		return nil
	}
	return s.userData.AdjustBudgetSpent(tx, transaction.UserID, key, sign*transaction.Amount)
}

// recomputeMonthlyTotals re-aggregates the current calendar month from the
// ledger instead of nudging cached counters, so the rollups can never drift
// from the transaction log.
func (s *LedgerService) recomputeMonthlyTotals(tx domain.Tx, userID string) error {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	income, err := s.transactions.SumByType(tx, userID, domain.TypeIncome, monthStart, monthEnd)
	if err != nil {
		return err
	}
	expenses, err := s.transactions.SumByType(tx, userID, domain.TypeExpense, monthStart, monthEnd)
	if err != nil {
		return err
	}
	return s.userData.SetMonthlyTotals(tx, userID, income, expenses)
}

func (s *LedgerService) ensureUserData(userID string) error {
	_, err := s.userData.Find(userID)
	if ledgerErrors.IsNotFoundError(err) {
		_, err = s.userData.Init(userID)
	}
	return err
}

func (s *LedgerService) GetUserTransactions(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.transactions.FindByUser(userID, filter)
}

func (s *LedgerService) GetRecentTransactions(userID string) ([]domain.Transaction, error) {
	return s.transactions.FindByUser(userID, domain.TransactionFilter{Limit: 10})
}
