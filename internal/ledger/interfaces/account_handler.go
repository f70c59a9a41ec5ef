package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/application"
	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

type AccountServiceInterface interface {
	CreateAccount(account *domain.Account) error
	GetAccounts(userID string) ([]domain.Account, error)
	UpdateAccount(userID, accountID string, update application.AccountUpdate) (*domain.Account, error)
	DeleteAccount(userID, accountID string) error
	GetAccountSummary(userID string) (*application.AccountSummary, error)
}

type AccountHandler struct {
	service      AccountServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewAccountHandler(
	service AccountServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *AccountHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &AccountHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type accountRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Balance       float64 `json:"balance"`
	Institution   string  `json:"institution"`
	AccountNumber string  `json:"accountNumber"`
}

type accountUpdateRequest struct {
	Name          *string  `json:"name"`
	Type          *string  `json:"type"`
	Balance       *float64 `json:"balance"`
	Institution   *string  `json:"institution"`
	AccountNumber *string  `json:"accountNumber"`
}

type accountResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Balance       float64 `json:"balance"`
	Institution   string  `json:"institution,omitempty"`
	AccountNumber string  `json:"accountNumber,omitempty"`
}

type accountSummaryResponse struct {
	TotalBalance float64 `json:"totalBalance"`
	CreditUsed   float64 `json:"creditUsed"`
	NetWorth     float64 `json:"netWorth"`
	AccountCount int     `json:"accountCount"`
}

func toAccountResponse(account domain.Account) accountResponse {
	return accountResponse{
		ID:            account.ID,
		Name:          account.Name,
		Type:          account.Type,
		Balance:       account.Balance,
		Institution:   account.Institution,
		AccountNumber: account.AccountNumber,
	}
}

func (h *AccountHandler) respondAccountError(w http.ResponseWriter, err error, fallback string) {
	if ledgerErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ledgerErrors.IsNotFoundError(err) {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Println("Account handler error:", err.Error())
	h.respondError(w, http.StatusInternalServerError, fallback)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account := &domain.Account{
		UserID:        userID,
		Name:          req.Name,
		Type:          req.Type,
		Balance:       req.Balance,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
	}
	if err := h.service.CreateAccount(account); err != nil {
		h.respondAccountError(w, err, "Failed to create account")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Account created successfully.",
		"data":    toAccountResponse(*account),
	})
}

func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	accounts, err := h.service.GetAccounts(userID)
	if err != nil {
		h.respondAccountError(w, err, "Failed to fetch accounts")
		return
	}
	responses := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toAccountResponse(account))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req accountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account, err := h.service.UpdateAccount(userID, r.PathValue("accountID"), application.AccountUpdate{
		Name:          req.Name,
		Type:          req.Type,
		Balance:       req.Balance,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		h.respondAccountError(w, err, "Failed to update account")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account updated successfully.",
		"data":    toAccountResponse(*account),
	})
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.service.DeleteAccount(userID, r.PathValue("accountID")); err != nil {
		h.respondAccountError(w, err, "Failed to delete account")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Account deleted successfully.",
	})
}

func (h *AccountHandler) GetAccountSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	summary, err := h.service.GetAccountSummary(userID)
	if err != nil {
		h.respondAccountError(w, err, "Failed to fetch account summary")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": accountSummaryResponse{
			TotalBalance: summary.TotalBalance,
			CreditUsed:   summary.CreditUsed,
			NetWorth:     summary.NetWorth,
			AccountCount: summary.AccountCount,
		},
	})
}
