package domain

import (
	"math"
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Tx abstracts a storage transaction so services can be exercised against
// in-memory repositories in tests. The Postgres repositories return *sql.Tx.
type Tx interface {
	Commit() error
	Rollback() error
}

type Transaction struct {
	ID                   string
	UserID               string // user UUID
	Type                 string // "income", "expense" or "transfer"
	Amount               float64
	Description          string
	Category             string
	SourceAccountID      string
	DestinationAccountID *string // transfers only
	Date                 time.Time
	Tags                 []string
	Recurring            bool
	CreatedAt            time.Time
}

type CategorySpend struct {
	Category string
	Total    float64
	Count    int
}

type MonthlyFlow struct {
	Month   string // "2006-01"
	Income  float64
	Expense float64
}

type DailySpend struct {
	Day    int
	Amount float64
}

type TransactionFilter struct {
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

type TransactionRepository interface {
	BeginTransaction() (Tx, error)
	Save(tx Tx, transaction Transaction) error
	FindByID(userID, transactionID string) (*Transaction, error)
	FindByUser(userID string, filter TransactionFilter) ([]Transaction, error)
	Delete(tx Tx, userID, transactionID string) error
	SumByType(tx Tx, userID, transactionType string, startDate, endDate time.Time) (float64, error)
	SpendingByCategory(userID string, startDate, endDate time.Time) ([]CategorySpend, error)
	MonthlyTrend(userID string, startDate time.Time) ([]MonthlyFlow, error)
	DailySpending(userID string, startDate time.Time) ([]DailySpend, error)
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}

func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TypeIncome, TypeExpense, TypeTransfer, "":
		return true
	}
	return false
}

// Validate enforces the invariants every transaction must satisfy before any
// posting is applied: positive amount, a source account, and for transfers a
// distinct destination account.
func (t *Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense && t.Type != TypeTransfer {
		return errors.ErrInvalidTransactionType
	}
	if t.Amount <= 0 {
		return errors.ErrInvalidAmount
	}
	if t.SourceAccountID == "" {
		return errors.ErrMissingSourceAccount
	}
	if t.Type == TypeTransfer {
		if t.DestinationAccountID == nil || *t.DestinationAccountID == "" {
			return errors.ErrMissingTargetAccount
		}
		if *t.DestinationAccountID == t.SourceAccountID {
			return errors.ErrSameTransferAccounts
		}
	} else if t.DestinationAccountID != nil {
		return errors.NewValidationError("Destination account is only valid for transfers")
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}
