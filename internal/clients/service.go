package clients

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrNameRequired   = errors.New("client name is required")
	ErrZeroAdjustment = errors.New("adjustment amount must not be zero")
)

// Client tracks a business relationship and a running balance. A positive
// balance means the client owes the user, negative means the user owes them.
type Client struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Name          string    `json:"name"`
	Type          string    `json:"type,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Description   string    `json:"description,omitempty"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ClientUpdate struct {
	Name          *string
	Type          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Description   *string
}

type Summary struct {
	TotalClients int     `json:"totalClients"`
	NetBalance   float64 `json:"netBalance"`
	OwedToYou    float64 `json:"owedToYou"`
	YouOwe       float64 `json:"youOwe"`
}

type Service interface {
	CreateClient(client *Client) error
	GetClients(userID string) ([]Client, error)
	UpdateClient(userID, clientID string, update ClientUpdate) (*Client, error)
	DeleteClient(userID, clientID string) error
	AdjustBalance(userID, clientID string, amount float64) (*Client, error)
	GetSummary(userID string) (*Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateClient(client *Client) error {
	client.ID = uuid.NewString()
	if client.Name == "" {
		return ErrNameRequired
	}
	return s.repo.createClient(client)
}

func (s *service) GetClients(userID string) ([]Client, error) {
	return s.repo.getClientsByUser(userID)
}

func (s *service) UpdateClient(userID, clientID string, update ClientUpdate) (*Client, error) {
	client, err := s.repo.getClientByID(userID, clientID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		client.Name = *update.Name
	}
	if update.Type != nil {
		client.Type = *update.Type
	}
	if update.ContactPerson != nil {
		client.ContactPerson = *update.ContactPerson
	}
	if update.Email != nil {
		client.Email = *update.Email
	}
	if update.Phone != nil {
		client.Phone = *update.Phone
	}
	if update.Address != nil {
		client.Address = *update.Address
	}
	if update.Description != nil {
		client.Description = *update.Description
	}
	if client.Name == "" {
		return nil, ErrNameRequired
	}
	if err := s.repo.updateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *service) DeleteClient(userID, clientID string) error {
	return s.repo.deleteClient(userID, clientID)
}

// AdjustBalance applies a signed increment to the client's balance as an
// atomic update.
func (s *service) AdjustBalance(userID, clientID string, amount float64) (*Client, error) {
	if amount == 0 {
		return nil, ErrZeroAdjustment
	}
	if err := s.repo.adjustBalance(userID, clientID, amount); err != nil {
		return nil, err
	}
	return s.repo.getClientByID(userID, clientID)
}

func (s *service) GetSummary(userID string) (*Summary, error) {
	clients, err := s.repo.getClientsByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := &Summary{TotalClients: len(clients)}
	for _, client := range clients {
		summary.NetBalance += client.Balance
		if client.Balance > 0 {
			summary.OwedToYou += client.Balance
		} else {
			summary.YouOwe += -client.Balance
		}
	}
	return summary, nil
}
