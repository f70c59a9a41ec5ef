package lending

import (
	"database/sql"
	"fmt"
)

type Repository interface {
	createRecord(record *Record) error
	getRecordsByUser(userID string) ([]Record, error)
	getRecordByID(userID, recordID string) (*Record, error)
	updateRecord(record *Record) error
	deleteRecord(userID, recordID string) error
}

type lendingRepository struct {
	db *sql.DB
}

func NewLendingRepository(db *sql.DB) Repository {
	return &lendingRepository{db: db}
}

const recordColumns = `id, user_id, type, person_name, contact, amount, interest_rate, due_date, description, account_id, is_settled, created_at, updated_at`

func (r *lendingRepository) createRecord(record *Record) error {
	query := `
		INSERT INTO lending_records (id, user_id, type, person_name, contact, amount, interest_rate, due_date, description, account_id, is_settled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, NOW(), NOW())
	`
	_, err := r.db.Exec(query, record.ID, record.UserID, record.Type, record.PersonName,
		record.Contact, record.Amount, record.InterestRate, record.DueDate,
		record.Description, record.AccountID, record.IsSettled)
	if err != nil {
		return fmt.Errorf("could not create lending record: %w", err)
	}
	return nil
}

func (r *lendingRepository) scanRecord(row interface{ Scan(...interface{}) error }) (*Record, error) {
	var record Record
	var accountID sql.NullString
	err := row.Scan(&record.ID, &record.UserID, &record.Type, &record.PersonName,
		&record.Contact, &record.Amount, &record.InterestRate, &record.DueDate,
		&record.Description, &accountID, &record.IsSettled, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.AccountID = accountID.String
	return &record, nil
}

func (r *lendingRepository) getRecordsByUser(userID string) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM lending_records WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch lending records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan lending record: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (r *lendingRepository) getRecordByID(userID, recordID string) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM lending_records WHERE id = $1 AND user_id = $2`
	record, err := r.scanRecord(r.db.QueryRow(query, recordID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch lending record: %w", err)
	}
	return record, nil
}

func (r *lendingRepository) updateRecord(record *Record) error {
	query := `
		UPDATE lending_records
		SET person_name = $1, contact = $2, amount = $3, interest_rate = $4, due_date = $5,
		    description = $6, account_id = NULLIF($7, ''), is_settled = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
	`
	result, err := r.db.Exec(query, record.PersonName, record.Contact, record.Amount,
		record.InterestRate, record.DueDate, record.Description, record.AccountID,
		record.IsSettled, record.ID, record.UserID)
	if err != nil {
		return fmt.Errorf("could not update lending record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *lendingRepository) deleteRecord(userID, recordID string) error {
	result, err := r.db.Exec(`DELETE FROM lending_records WHERE id = $1 AND user_id = $2`, recordID, userID)
	if err != nil {
		return fmt.Errorf("could not delete lending record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
