package domain

import (
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

const (
	AccountTypeSavings    = "savings"
	AccountTypeChecking   = "checking"
	AccountTypeCredit     = "credit"
	AccountTypeInvestment = "investment"
	AccountTypeCash       = "cash"
	AccountTypeWallet     = "wallet"
)

type Account struct {
	ID            string
	UserID        string
	Name          string
	Type          string
	Balance       float64
	Institution   string
	AccountNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type AccountRepository interface {
	Save(account *Account) error
	FindByUser(userID string) ([]Account, error)
	FindByID(userID, accountID string) (*Account, error)
	Update(account Account) error
	Delete(userID, accountID string) error
	// AdjustBalance applies an atomic balance increment inside tx. It returns
	// ErrAccountNotFound when the account does not exist or belongs to another user.
	AdjustBalance(tx Tx, userID, accountID string, delta float64) error
}

func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeCredit,
		AccountTypeInvestment, AccountTypeCash, AccountTypeWallet:
		return true
	}
	return false
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.NewValidationError("Account name is required")
	}
	if !IsValidAccountType(a.Type) {
		return errors.NewValidationError("Invalid account type")
	}
	return nil
}
