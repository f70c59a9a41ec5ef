package bills

import (
	"database/sql"
	"fmt"
	"time"
)

type Repository interface {
	createBill(bill *Bill) error
	getBillsByUser(userID string) ([]Bill, error)
	getBillByID(userID, billID string) (*Bill, error)
	updateBill(bill *Bill) error
	deleteBill(userID, billID string) error
	getUnpaidDueBetween(from, to time.Time) ([]Bill, error)
}

type billRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) Repository {
	return &billRepository{db: db}
}

func (r *billRepository) createBill(bill *Bill) error {
	query := `
		INSERT INTO bills (id, user_id, name, description, amount, category, account_id, frequency, due_date, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(query, bill.ID, bill.UserID, bill.Name, bill.Description, bill.Amount,
		bill.Category, bill.AccountID, bill.Frequency, bill.DueDate, bill.IsPaid)
	if err != nil {
		return fmt.Errorf("could not create bill: %w", err)
	}
	return nil
}

func (r *billRepository) scanBill(row interface{ Scan(...interface{}) error }) (*Bill, error) {
	var bill Bill
	var accountID sql.NullString
	err := row.Scan(&bill.ID, &bill.UserID, &bill.Name, &bill.Description, &bill.Amount,
		&bill.Category, &accountID, &bill.Frequency, &bill.DueDate, &bill.IsPaid,
		&bill.LastPaidDate, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return nil, err
	}
	bill.AccountID = accountID.String
	return &bill, nil
}

const billColumns = `id, user_id, name, description, amount, category, account_id, frequency, due_date, is_paid, last_paid_date, created_at, updated_at`

func (r *billRepository) getBillsByUser(userID string) ([]Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1 ORDER BY due_date`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		bill, err := r.scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}

func (r *billRepository) getBillByID(userID, billID string) (*Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 AND user_id = $2`
	bill, err := r.scanBill(r.db.QueryRow(query, billID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch bill: %w", err)
	}
	return bill, nil
}

func (r *billRepository) updateBill(bill *Bill) error {
	query := `
		UPDATE bills
		SET name = $1, description = $2, amount = $3, category = $4, account_id = NULLIF($5, ''),
		    frequency = $6, due_date = $7, is_paid = $8, last_paid_date = $9, updated_at = NOW()
		WHERE id = $10 AND user_id = $11
	`
	result, err := r.db.Exec(query, bill.Name, bill.Description, bill.Amount, bill.Category,
		bill.AccountID, bill.Frequency, bill.DueDate, bill.IsPaid, bill.LastPaidDate,
		bill.ID, bill.UserID)
	if err != nil {
		return fmt.Errorf("could not update bill: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *billRepository) deleteBill(userID, billID string) error {
	result, err := r.db.Exec(`DELETE FROM bills WHERE id = $1 AND user_id = $2`, billID, userID)
	if err != nil {
		return fmt.Errorf("could not delete bill: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *billRepository) getUnpaidDueBetween(from, to time.Time) ([]Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE is_paid = false AND due_date >= $1 AND due_date < $2 ORDER BY due_date`
	rows, err := r.db.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("could not fetch due bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		bill, err := r.scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	return bills, rows.Err()
}
