package clients

import (
	"database/sql"
	"fmt"
)

type Repository interface {
	createClient(client *Client) error
	getClientsByUser(userID string) ([]Client, error)
	getClientByID(userID, clientID string) (*Client, error)
	updateClient(client *Client) error
	deleteClient(userID, clientID string) error
	adjustBalance(userID, clientID string, amount float64) error
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) Repository {
	return &clientRepository{db: db}
}

const clientColumns = `id, user_id, name, type, contact_person, email, phone, address, description, balance, created_at, updated_at`

func (r *clientRepository) createClient(client *Client) error {
	query := `
		INSERT INTO clients (id, user_id, name, type, contact_person, email, phone, address, description, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(query, client.ID, client.UserID, client.Name, client.Type,
		client.ContactPerson, client.Email, client.Phone, client.Address,
		client.Description, client.Balance)
	if err != nil {
		return fmt.Errorf("could not create client: %w", err)
	}
	return nil
}

func (r *clientRepository) scanClient(row interface{ Scan(...interface{}) error }) (*Client, error) {
	var client Client
	err := row.Scan(&client.ID, &client.UserID, &client.Name, &client.Type,
		&client.ContactPerson, &client.Email, &client.Phone, &client.Address,
		&client.Description, &client.Balance, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) getClientsByUser(userID string) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch clients: %w", err)
	}
	defer rows.Close()

	var result []Client
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan client: %w", err)
		}
		result = append(result, *client)
	}
	return result, rows.Err()
}

func (r *clientRepository) getClientByID(userID, clientID string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND user_id = $2`
	client, err := r.scanClient(r.db.QueryRow(query, clientID, userID))
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch client: %w", err)
	}
	return client, nil
}

func (r *clientRepository) updateClient(client *Client) error {
	query := `
		UPDATE clients
		SET name = $1, type = $2, contact_person = $3, email = $4, phone = $5,
		    address = $6, description = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
	`
	result, err := r.db.Exec(query, client.Name, client.Type, client.ContactPerson,
		client.Email, client.Phone, client.Address, client.Description,
		client.ID, client.UserID)
	if err != nil {
		return fmt.Errorf("could not update client: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) deleteClient(userID, clientID string) error {
	result, err := r.db.Exec(`DELETE FROM clients WHERE id = $1 AND user_id = $2`, clientID, userID)
	if err != nil {
		return fmt.Errorf("could not delete client: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) adjustBalance(userID, clientID string, amount float64) error {
	query := `UPDATE clients SET balance = balance + $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`
	result, err := r.db.Exec(query, amount, clientID, userID)
	if err != nil {
		return fmt.Errorf("could not adjust client balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}
