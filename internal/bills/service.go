package bills

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

var (
	ErrBillNotFound     = errors.New("bill not found")
	ErrNameRequired     = errors.New("bill name is required")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidFrequency = errors.New("frequency must be weekly, monthly, quarterly or yearly")
)

type Bill struct {
	ID           string     `json:"id"`
	UserID       string     `json:"-"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Amount       float64    `json:"amount"`
	Category     string     `json:"category,omitempty"`
	AccountID    string     `json:"accountId,omitempty"`
	Frequency    string     `json:"frequency"`
	DueDate      time.Time  `json:"dueDate"`
	IsPaid       bool       `json:"isPaid"`
	LastPaidDate *time.Time `json:"lastPaidDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type BillUpdate struct {
	Name        *string
	Description *string
	Amount      *float64
	Category    *string
	AccountID   *string
	Frequency   *string
	DueDate     *time.Time
	IsPaid      *bool
}

// Summary aggregates the user's bills. MonthlyTotal normalizes every
// frequency to a per-month figure.
type Summary struct {
	TotalBills    int     `json:"totalBills"`
	UnpaidCount   int     `json:"unpaidCount"`
	UnpaidAmount  float64 `json:"unpaidAmount"`
	OverdueCount  int     `json:"overdueCount"`
	OverdueAmount float64 `json:"overdueAmount"`
	MonthlyTotal  float64 `json:"monthlyTotal"`
}

type Service interface {
	CreateBill(bill *Bill) error
	GetBills(userID string) ([]Bill, error)
	UpdateBill(userID, billID string, update BillUpdate) (*Bill, error)
	DeleteBill(userID, billID string) error
	MarkPaid(userID, billID string) (*Bill, error)
	GetSummary(userID string) (*Summary, error)
	GetBillsDueSoon(days int) ([]Bill, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func isValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

func validateBill(bill *Bill) error {
	if bill.Name == "" {
		return ErrNameRequired
	}
	if bill.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !isValidFrequency(bill.Frequency) {
		return ErrInvalidFrequency
	}
	return nil
}

func (s *service) CreateBill(bill *Bill) error {
	bill.ID = uuid.NewString()
	if bill.Frequency == "" {
		bill.Frequency = FrequencyMonthly
	}
	if bill.DueDate.IsZero() {
		bill.DueDate = s.now()
	}
	if err := validateBill(bill); err != nil {
		return err
	}
	return s.repo.createBill(bill)
}

func (s *service) GetBills(userID string) ([]Bill, error) {
	return s.repo.getBillsByUser(userID)
}

func (s *service) UpdateBill(userID, billID string, update BillUpdate) (*Bill, error) {
	bill, err := s.repo.getBillByID(userID, billID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		bill.Name = *update.Name
	}
	if update.Description != nil {
		bill.Description = *update.Description
	}
	if update.Amount != nil {
		bill.Amount = *update.Amount
	}
	if update.Category != nil {
		bill.Category = *update.Category
	}
	if update.AccountID != nil {
		bill.AccountID = *update.AccountID
	}
	if update.Frequency != nil {
		bill.Frequency = *update.Frequency
	}
	if update.DueDate != nil {
		bill.DueDate = *update.DueDate
	}
	if update.IsPaid != nil {
		bill.IsPaid = *update.IsPaid
	}
	if err := validateBill(bill); err != nil {
		return nil, err
	}
	if err := s.repo.updateBill(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *service) DeleteBill(userID, billID string) error {
	return s.repo.deleteBill(userID, billID)
}

func (s *service) MarkPaid(userID, billID string) (*Bill, error) {
	bill, err := s.repo.getBillByID(userID, billID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	bill.IsPaid = true
	bill.LastPaidDate = &now
	if err := s.repo.updateBill(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func monthlyEquivalent(bill Bill) float64 {
	switch bill.Frequency {
	case FrequencyWeekly:
		return bill.Amount * 4
	case FrequencyQuarterly:
		return bill.Amount / 3
	case FrequencyYearly:
		return bill.Amount / 12
	default:
		return bill.Amount
	}
}

func (s *service) GetSummary(userID string) (*Summary, error) {
	bills, err := s.repo.getBillsByUser(userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	summary := &Summary{TotalBills: len(bills)}
	for _, bill := range bills {
		summary.MonthlyTotal += monthlyEquivalent(bill)
		if bill.IsPaid {
			continue
		}
		summary.UnpaidCount++
		summary.UnpaidAmount += bill.Amount
		if bill.DueDate.Before(now) {
			summary.OverdueCount++
			summary.OverdueAmount += bill.Amount
		}
	}
	return summary, nil
}

// GetBillsDueSoon returns unpaid bills across all users due within the
// given number of days. Used by the reminder scheduler.
func (s *service) GetBillsDueSoon(days int) ([]Bill, error) {
	now := s.now()
	return s.repo.getUnpaidDueBetween(now, now.AddDate(0, 0, days))
}
