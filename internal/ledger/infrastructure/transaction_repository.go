package infrastructure

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) BeginTransaction() (domain.Tx, error) {
	return r.db.Begin()
}

func (r *TransactionRepository) Save(tx domain.Tx, transaction domain.Transaction) error {
	_, err := querierFor(r.db, tx).Exec(
		`INSERT INTO transactions
		(id, user_id, type, amount, description, category, source_account_id, destination_account_id, date, tags, recurring, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, string_to_array(NULLIF($10, ''), ','), $11, NOW())`,
		transaction.ID, transaction.UserID, transaction.Type, transaction.Amount,
		transaction.Description, transaction.Category, transaction.SourceAccountID,
		transaction.DestinationAccountID, transaction.Date,
		strings.Join(transaction.Tags, ","), transaction.Recurring,
	)
	return err
}

func (r *TransactionRepository) FindByID(userID, transactionID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var tags sql.NullString
	err := r.db.QueryRow(
		`SELECT id, user_id, type, amount, description, category, source_account_id, destination_account_id,
			date, array_to_string(tags, ','), recurring, created_at
		FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID).
		Scan(&transaction.ID, &transaction.UserID, &transaction.Type, &transaction.Amount,
			&transaction.Description, &transaction.Category, &transaction.SourceAccountID,
			&transaction.DestinationAccountID, &transaction.Date, &tags,
			&transaction.Recurring, &transaction.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerErrors.ErrTransactionNotFound
		}
		return nil, err
	}
	if tags.Valid && tags.String != "" {
		transaction.Tags = strings.Split(tags.String, ",")
	}
	return &transaction, nil
}

func (r *TransactionRepository) FindByUser(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT id, user_id, type, amount, description, category, source_account_id, destination_account_id,
		date, array_to_string(tags, ','), recurring, created_at
	FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $2`
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		query += ` AND date >= $` + placeholder(len(args))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		query += ` AND date <= $` + placeholder(len(args))
	}
	query += ` ORDER BY date DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + placeholder(len(args))
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		var tags sql.NullString
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Type,
			&transaction.Amount, &transaction.Description, &transaction.Category,
			&transaction.SourceAccountID, &transaction.DestinationAccountID,
			&transaction.Date, &tags, &transaction.Recurring, &transaction.CreatedAt); err != nil {
			return nil, err
		}
		if tags.Valid && tags.String != "" {
			transaction.Tags = strings.Split(tags.String, ",")
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) Delete(tx domain.Tx, userID, transactionID string) error {
	result, err := querierFor(r.db, tx).Exec(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledgerErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) SumByType(tx domain.Tx, userID, transactionType string, startDate, endDate time.Time) (float64, error) {
	var total float64
	err := querierFor(r.db, tx).QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = $1 AND type = $2 AND date >= $3 AND date < $4`,
		userID, transactionType, startDate, endDate).Scan(&total)
	return total, err
}

func (r *TransactionRepository) SpendingByCategory(userID string, startDate, endDate time.Time) ([]domain.CategorySpend, error) {
	rows, err := r.db.Query(
		`SELECT category, SUM(amount), COUNT(*) FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $2 AND date <= $3
		GROUP BY category ORDER BY SUM(amount) DESC`,
		userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spends []domain.CategorySpend
	for rows.Next() {
		var spend domain.CategorySpend
		if err := rows.Scan(&spend.Category, &spend.Total, &spend.Count); err != nil {
			return nil, err
		}
		spends = append(spends, spend)
	}
	return spends, rows.Err()
}

func (r *TransactionRepository) MonthlyTrend(userID string, startDate time.Time) ([]domain.MonthlyFlow, error) {
	rows, err := r.db.Query(
		`SELECT to_char(date_trunc('month', date), 'YYYY-MM') AS month, type, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND type IN ('income', 'expense') AND date >= $2
		GROUP BY month, type ORDER BY month`,
		userID, startDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []domain.MonthlyFlow
	for rows.Next() {
		var month, transactionType string
		var total float64
		if err := rows.Scan(&month, &transactionType, &total); err != nil {
			return nil, err
		}
		if len(trend) == 0 || trend[len(trend)-1].Month != month {
			trend = append(trend, domain.MonthlyFlow{Month: month})
		}
		if transactionType == domain.TypeIncome {
			trend[len(trend)-1].Income = total
		} else {
			trend[len(trend)-1].Expense = total
		}
	}
	return trend, rows.Err()
}

func (r *TransactionRepository) DailySpending(userID string, startDate time.Time) ([]domain.DailySpend, error) {
	rows, err := r.db.Query(
		`SELECT EXTRACT(DAY FROM date)::int, SUM(amount) FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $2
		GROUP BY 1 ORDER BY 1`,
		userID, startDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spending []domain.DailySpend
	for rows.Next() {
		var spend domain.DailySpend
		if err := rows.Scan(&spend.Day, &spend.Amount); err != nil {
			return nil, err
		}
		spending = append(spending, spend)
	}
	return spending, rows.Err()
}

func placeholder(n int) string {
	return strconv.Itoa(n)
}
