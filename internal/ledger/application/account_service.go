package application

import (
	"math"

	"github.com/google/uuid"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
)

type AccountService struct {
	repo domain.AccountRepository
}

func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

type AccountUpdate struct {
	Name          *string
	Type          *string
	Balance       *float64
	Institution   *string
	AccountNumber *string
}

// AccountSummary aggregates balances across the user's accounts. Credit
// accounts count as used credit at aggregation time, not as assets.
type AccountSummary struct {
	TotalBalance float64
	CreditUsed   float64
	NetWorth     float64
	AccountCount int
}

func (s *AccountService) CreateAccount(account *domain.Account) error {
	account.ID = uuid.NewString()
	if account.Type == "" {
		account.Type = domain.AccountTypeSavings
	}
	if err := account.Validate(); err != nil {
		return err
	}
	return s.repo.Save(account)
}

func (s *AccountService) GetAccounts(userID string) ([]domain.Account, error) {
	return s.repo.FindByUser(userID)
}

func (s *AccountService) UpdateAccount(userID, accountID string, update AccountUpdate) (*domain.Account, error) {
	account, err := s.repo.FindByID(userID, accountID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Type != nil {
		account.Type = *update.Type
	}
	if update.Balance != nil {
		account.Balance = *update.Balance
	}
	if update.Institution != nil {
		account.Institution = *update.Institution
	}
	if update.AccountNumber != nil {
		account.AccountNumber = *update.AccountNumber
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(*account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) DeleteAccount(userID, accountID string) error {
	return s.repo.Delete(userID, accountID)
}

func (s *AccountService) GetAccountSummary(userID string) (*AccountSummary, error) {
	accounts, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{AccountCount: len(accounts)}
	for _, account := range accounts {
		if account.Type == domain.AccountTypeCredit {
			summary.CreditUsed += math.Abs(account.Balance)
		} else {
			summary.TotalBalance += account.Balance
		}
	}
	summary.NetWorth = summary.TotalBalance - summary.CreditUsed
	return summary, nil
}
