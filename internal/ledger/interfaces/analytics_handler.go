package interfaces

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/application"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
)

type AnalyticsServiceInterface interface {
	GetSummary(userID string) (*application.AnalyticsSummary, error)
	GetSpendingByCategory(userID string, startDate, endDate time.Time) ([]domain.CategorySpend, error)
	GetMonthlyTrend(userID string, months int) ([]domain.MonthlyFlow, error)
	GetDailySpending(userID string) ([]domain.DailySpend, error)
}

type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewAnalyticsHandler(
	service AnalyticsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *AnalyticsHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &AnalyticsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type analyticsSummaryResponse struct {
	TotalSpending float64 `json:"totalSpending"`
	AvgDailySpend float64 `json:"avgDailySpend"`
	SavingsRate   float64 `json:"savingsRate"`
	TopCategory   string  `json:"topCategory"`
}

type categorySpendResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

type monthlyFlowResponse struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type dailySpendResponse struct {
	Day   int     `json:"day"`
	Total float64 `json:"total"`
}

func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		log.Println("Error computing analytics summary:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": analyticsSummaryResponse{
			TotalSpending: summary.TotalSpending,
			AvgDailySpend: summary.AvgDailySpend,
			SavingsRate:   summary.SavingsRate,
			TopCategory:   summary.TopCategory,
		},
	})
}

func (h *AnalyticsHandler) GetSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var startDate, endDate time.Time
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start date format")
			return
		}
		startDate = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
		endDate = parsed
	}

	spends, err := h.service.GetSpendingByCategory(userID, startDate, endDate)
	if err != nil {
		log.Println("Error fetching spending by category:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch spending by category")
		return
	}
	responses := make([]categorySpendResponse, 0, len(spends))
	for _, spend := range spends {
		responses = append(responses, categorySpendResponse{
			Category: spend.Category,
			Total:    spend.Total,
			Count:    spend.Count,
		})
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *AnalyticsHandler) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	months := 0
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid months parameter")
			return
		}
		months = parsed
	}
	trend, err := h.service.GetMonthlyTrend(userID, months)
	if err != nil {
		log.Println("Error fetching monthly trend:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch monthly trend")
		return
	}
	responses := make([]monthlyFlowResponse, 0, len(trend))
	for _, flow := range trend {
		responses = append(responses, monthlyFlowResponse{
			Month:    flow.Month,
			Income:   flow.Income,
			Expenses: flow.Expense,
		})
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *AnalyticsHandler) GetDailySpending(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	spends, err := h.service.GetDailySpending(userID)
	if err != nil {
		log.Println("Error fetching daily spending:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch daily spending")
		return
	}
	responses := make([]dailySpendResponse, 0, len(spends))
	for _, spend := range spends {
		responses = append(responses, dailySpendResponse{
			Day:   spend.Day,
			Total: spend.Amount,
		})
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}
