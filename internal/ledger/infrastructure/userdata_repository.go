package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

type UserDataRepository struct {
	db *sql.DB
}

func NewUserDataRepository(db *sql.DB) *UserDataRepository {
	return &UserDataRepository{db: db}
}

func (r *UserDataRepository) Find(userID string) (*domain.UserData, error) {
	var data domain.UserData
	err := r.db.QueryRow(
		`SELECT user_id, total_balance, monthly_income, monthly_expenses, saving_rate, financial_health, budget_used, created_at, updated_at
		FROM user_data WHERE user_id = $1`, userID).
		Scan(&data.UserID, &data.TotalBalance, &data.MonthlyIncome, &data.MonthlyExpenses,
			&data.SavingRate, &data.FinancialHealth, &data.BudgetUsed, &data.CreatedAt, &data.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerErrors.ErrUserDataNotFound
		}
		return nil, err
	}
	return &data, nil
}

func (r *UserDataRepository) Init(userID string) (*domain.UserData, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO user_data (user_id, created_at, updated_at) VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, err
	}

	for _, category := range domain.DefaultBudgets {
		_, err = tx.Exec(
			`INSERT INTO budget_categories (user_id, category_key, budget, spent) VALUES ($1, $2, $3, 0)
			ON CONFLICT (user_id, category_key) DO NOTHING`,
			userID, category.Key, category.Budget)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Find(userID)
}

func (r *UserDataRepository) Update(userID string, update domain.UserDataUpdate) (*domain.UserData, error) {
	result, err := r.db.Exec(
		`UPDATE user_data SET
			total_balance = COALESCE($1, total_balance),
			monthly_income = COALESCE($2, monthly_income),
			monthly_expenses = COALESCE($3, monthly_expenses),
			saving_rate = COALESCE($4, saving_rate),
			financial_health = COALESCE($5, financial_health),
			budget_used = COALESCE($6, budget_used),
			updated_at = NOW()
		WHERE user_id = $7`,
		update.TotalBalance, update.MonthlyIncome, update.MonthlyExpenses,
		update.SavingRate, update.FinancialHealth, update.BudgetUsed, userID,
	)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ledgerErrors.ErrUserDataNotFound
	}
	return r.Find(userID)
}

func (r *UserDataRepository) ListUserIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT user_id FROM user_data`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserDataRepository) FindBudgetCategories(userID string) ([]domain.BudgetCategory, error) {
	rows, err := r.db.Query(
		`SELECT category_key, budget, spent FROM budget_categories WHERE user_id = $1 ORDER BY category_key`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.BudgetCategory
	for rows.Next() {
		var category domain.BudgetCategory
		if err := rows.Scan(&category.Key, &category.Budget, &category.Spent); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *UserDataRepository) SetMonthlyTotals(tx domain.Tx, userID string, income, expenses float64) error {
	_, err := querierFor(r.db, tx).Exec(
		`UPDATE user_data SET monthly_income = $1, monthly_expenses = $2, updated_at = NOW() WHERE user_id = $3`,
		income, expenses, userID)
	return err
}

// AdjustBudgetSpent clamps at zero so a delete can never drive an envelope's
// spent figure negative.
func (r *UserDataRepository) AdjustBudgetSpent(tx domain.Tx, userID, categoryKey string, delta float64) error {
	_, err := querierFor(r.db, tx).Exec(
		`UPDATE budget_categories SET spent = GREATEST(spent + $1, 0) WHERE user_id = $2 AND category_key = $3`,
		delta, userID, categoryKey)
	return err
}

func (r *UserDataRepository) SaveSummary(userID string, totalBalance, savingRate, financialHealth, budgetUsed float64) error {
	_, err := r.db.Exec(
		`UPDATE user_data SET total_balance = $1, saving_rate = $2, financial_health = $3, budget_used = $4, updated_at = NOW()
		WHERE user_id = $5`,
		totalBalance, savingRate, financialHealth, budgetUsed, userID)
	return err
}
