package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(account *domain.Account) error {
	_, err := r.db.Exec(
		`INSERT INTO accounts (id, user_id, name, type, balance, institution, account_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
		account.ID, account.UserID, account.Name, account.Type, account.Balance,
		account.Institution, account.AccountNumber,
	)
	return err
}

func (r *AccountRepository) FindByUser(userID string) ([]domain.Account, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, type, balance, institution, account_number, created_at, updated_at
		FROM accounts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Type,
			&account.Balance, &account.Institution, &account.AccountNumber,
			&account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) FindByID(userID, accountID string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		`SELECT id, user_id, name, type, balance, institution, account_number, created_at, updated_at
		FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID).
		Scan(&account.ID, &account.UserID, &account.Name, &account.Type, &account.Balance,
			&account.Institution, &account.AccountNumber, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerErrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Update(account domain.Account) error {
	result, err := r.db.Exec(
		`UPDATE accounts SET name = $1, type = $2, balance = $3, institution = $4, account_number = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7`,
		account.Name, account.Type, account.Balance, account.Institution,
		account.AccountNumber, account.ID, account.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *AccountRepository) Delete(userID, accountID string) error {
	result, err := r.db.Exec(`DELETE FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// AdjustBalance increments the balance in place so concurrent postings never
// lose updates to a read-modify-write race.
func (r *AccountRepository) AdjustBalance(tx domain.Tx, userID, accountID string, delta float64) error {
	result, err := querierFor(r.db, tx).Exec(
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		delta, accountID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledgerErrors.ErrAccountNotFound
	}
	return nil
}
