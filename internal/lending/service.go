package lending

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	TypeLent     = "lent"
	TypeBorrowed = "borrowed"
)

var (
	ErrRecordNotFound  = errors.New("lending record not found")
	ErrInvalidType     = errors.New("type must be 'lent' or 'borrowed'")
	ErrPersonRequired  = errors.New("person name is required")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrAlreadySettled  = errors.New("lending record already settled")
	ErrInvalidInterest = errors.New("interest rate must not be negative")
)

type Record struct {
	ID           string     `json:"id"`
	UserID       string     `json:"-"`
	Type         string     `json:"type"`
	PersonName   string     `json:"personName"`
	Contact      string     `json:"contact,omitempty"`
	Amount       float64    `json:"amount"`
	InterestRate float64    `json:"interestRate"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Description  string     `json:"description,omitempty"`
	AccountID    string     `json:"accountId,omitempty"`
	IsSettled    bool       `json:"isSettled"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type RecordUpdate struct {
	PersonName   *string
	Contact      *string
	Amount       *float64
	InterestRate *float64
	DueDate      *time.Time
	Description  *string
}

// Summary covers active (unsettled) records only.
type Summary struct {
	TotalLent     float64 `json:"totalLent"`
	TotalBorrowed float64 `json:"totalBorrowed"`
	NetPosition   float64 `json:"netPosition"`
	LentCount     int     `json:"lentCount"`
	BorrowedCount int     `json:"borrowedCount"`
}

type Service interface {
	CreateRecord(record *Record) error
	GetRecords(userID string) ([]Record, error)
	UpdateRecord(userID, recordID string, update RecordUpdate) (*Record, error)
	DeleteRecord(userID, recordID string) error
	SettleRecord(userID, recordID string) (*Record, error)
	GetSummary(userID string) (*Summary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateRecord(record *Record) error {
	if record.Type != TypeLent && record.Type != TypeBorrowed {
		return ErrInvalidType
	}
	if record.PersonName == "" {
		return ErrPersonRequired
	}
	if record.Amount <= 0 {
		return ErrInvalidAmount
	}
	if record.InterestRate < 0 {
		return ErrInvalidInterest
	}
	return nil
}

func (s *service) CreateRecord(record *Record) error {
	record.ID = uuid.NewString()
	if err := validateRecord(record); err != nil {
		return err
	}
	return s.repo.createRecord(record)
}

func (s *service) GetRecords(userID string) ([]Record, error) {
	return s.repo.getRecordsByUser(userID)
}

func (s *service) UpdateRecord(userID, recordID string, update RecordUpdate) (*Record, error) {
	record, err := s.repo.getRecordByID(userID, recordID)
	if err != nil {
		return nil, err
	}
	if update.PersonName != nil {
		record.PersonName = *update.PersonName
	}
	if update.Contact != nil {
		record.Contact = *update.Contact
	}
	if update.Amount != nil {
		record.Amount = *update.Amount
	}
	if update.InterestRate != nil {
		record.InterestRate = *update.InterestRate
	}
	if update.DueDate != nil {
		record.DueDate = update.DueDate
	}
	if update.Description != nil {
		record.Description = *update.Description
	}
	if err := validateRecord(record); err != nil {
		return nil, err
	}
	if err := s.repo.updateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) DeleteRecord(userID, recordID string) error {
	return s.repo.deleteRecord(userID, recordID)
}

func (s *service) SettleRecord(userID, recordID string) (*Record, error) {
	record, err := s.repo.getRecordByID(userID, recordID)
	if err != nil {
		return nil, err
	}
	if record.IsSettled {
		return nil, ErrAlreadySettled
	}
	record.IsSettled = true
	if err := s.repo.updateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) GetSummary(userID string) (*Summary, error) {
	records, err := s.repo.getRecordsByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := &Summary{}
	for _, record := range records {
		if record.IsSettled {
			continue
		}
		switch record.Type {
		case TypeLent:
			summary.TotalLent += record.Amount
			summary.LentCount++
		case TypeBorrowed:
			summary.TotalBorrowed += record.Amount
			summary.BorrowedCount++
		}
	}
	summary.NetPosition = summary.TotalLent - summary.TotalBorrowed
	return summary, nil
}
