package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

type UserDataServiceInterface interface {
	GetOrInit(userID string) (*domain.UserData, error)
	UpdateUserData(userID string, update domain.UserDataUpdate) (*domain.UserData, error)
	GetBudget(userID string) ([]domain.BudgetCategory, error)
	RefreshSummary(userID string) (*domain.UserData, error)
}

type UserDataHandler struct {
	service      UserDataServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewUserDataHandler(
	service UserDataServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *UserDataHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &UserDataHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type userDataResponse struct {
	TotalBalance    float64 `json:"totalBalance"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	SavingRate      float64 `json:"savingRate"`
	FinancialHealth float64 `json:"financialHealth"`
	BudgetUsed      float64 `json:"budgetUsed"`
}

type userDataUpdateRequest struct {
	TotalBalance    *float64 `json:"totalBalance"`
	MonthlyIncome   *float64 `json:"monthlyIncome"`
	MonthlyExpenses *float64 `json:"monthlyExpenses"`
	SavingRate      *float64 `json:"savingRate"`
	FinancialHealth *float64 `json:"financialHealth"`
	BudgetUsed      *float64 `json:"budgetUsed"`
}

type budgetCategoryResponse struct {
	Key    string  `json:"key"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
}

func toUserDataResponse(data domain.UserData) userDataResponse {
	return userDataResponse{
		TotalBalance:    data.TotalBalance,
		MonthlyIncome:   data.MonthlyIncome,
		MonthlyExpenses: data.MonthlyExpenses,
		SavingRate:      data.SavingRate,
		FinancialHealth: data.FinancialHealth,
		BudgetUsed:      data.BudgetUsed,
	}
}

func (h *UserDataHandler) respondUserDataError(w http.ResponseWriter, err error, fallback string) {
	if ledgerErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ledgerErrors.IsNotFoundError(err) {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Println("User data handler error:", err.Error())
	h.respondError(w, http.StatusInternalServerError, fallback)
}

func (h *UserDataHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	data, err := h.service.GetOrInit(userID)
	if err != nil {
		h.respondUserDataError(w, err, "Failed to fetch user data")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   toUserDataResponse(*data),
	})
}

func (h *UserDataHandler) UpdateUserData(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req userDataUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	data, err := h.service.UpdateUserData(userID, domain.UserDataUpdate{
		TotalBalance:    req.TotalBalance,
		MonthlyIncome:   req.MonthlyIncome,
		MonthlyExpenses: req.MonthlyExpenses,
		SavingRate:      req.SavingRate,
		FinancialHealth: req.FinancialHealth,
		BudgetUsed:      req.BudgetUsed,
	})
	if err != nil {
		h.respondUserDataError(w, err, "Failed to update user data")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "User data updated successfully.",
		"data":    toUserDataResponse(*data),
	})
}

func (h *UserDataHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	budget, err := h.service.GetBudget(userID)
	if err != nil {
		h.respondUserDataError(w, err, "Failed to fetch budget")
		return
	}
	responses := make([]budgetCategoryResponse, 0, len(budget))
	for _, category := range budget {
		responses = append(responses, budgetCategoryResponse{
			Key:    category.Key,
			Budget: category.Budget,
			Spent:  category.Spent,
		})
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *UserDataHandler) RefreshSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	data, err := h.service.RefreshSummary(userID)
	if err != nil {
		h.respondUserDataError(w, err, "Failed to refresh summary")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Summary refreshed successfully.",
		"data":    toUserDataResponse(*data),
	})
}
