package application

import (
	"math"
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
)

// AnalyticsService answers read-only questions with aggregation queries over
// the transaction log; it never touches cached state.
type AnalyticsService struct {
	transactions domain.TransactionRepository
	now          func() time.Time
}

func NewAnalyticsService(transactions domain.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{transactions: transactions, now: time.Now}
}

type AnalyticsSummary struct {
	TotalSpending float64
	AvgDailySpend float64
	SavingsRate   float64
	TopCategory   string
}

func (s *AnalyticsService) GetSummary(userID string) (*AnalyticsSummary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	totalSpending, err := s.transactions.SumByType(nil, userID, domain.TypeExpense, monthStart, now)
	if err != nil {
		return nil, err
	}
	totalIncome, err := s.transactions.SumByType(nil, userID, domain.TypeIncome, monthStart, now)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		TotalSpending: totalSpending,
		AvgDailySpend: math.Round(totalSpending / float64(now.Day())),
		TopCategory:   "N/A",
	}
	if totalIncome > 0 {
		summary.SavingsRate = math.Round((totalIncome - totalSpending) / totalIncome * 100)
	}

	spends, err := s.transactions.SpendingByCategory(userID, monthStart, now)
	if err != nil {
		return nil, err
	}
	var maxSpending float64
	for _, spend := range spends {
		if spend.Total > maxSpending {
			maxSpending = spend.Total
			summary.TopCategory = spend.Category
		}
	}
	return summary, nil
}

func (s *AnalyticsService) GetSpendingByCategory(userID string, startDate, endDate time.Time) ([]domain.CategorySpend, error) {
	now := s.now()
	if startDate.IsZero() {
		startDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if endDate.IsZero() {
		endDate = now
	}
	return s.transactions.SpendingByCategory(userID, startDate, endDate)
}

func (s *AnalyticsService) GetMonthlyTrend(userID string, months int) ([]domain.MonthlyFlow, error) {
	if months <= 0 {
		months = 6
	}
	now := s.now()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -months, 0)
	return s.transactions.MonthlyTrend(userID, startDate)
}

func (s *AnalyticsService) GetDailySpending(userID string) ([]domain.DailySpend, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.transactions.DailySpending(userID, monthStart)
}
