package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/ayushsdevforge/pockettune-server/internal/ledger/domain"
	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

type LedgerServiceInterface interface {
	CreateIncome(transaction *domain.Transaction) error
	CreateExpense(transaction *domain.Transaction) error
	CreateTransfer(transaction *domain.Transaction) error
	DeleteTransaction(userID, transactionID string) error
	GetUserTransactions(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	GetRecentTransactions(userID string) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	service      LedgerServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service LedgerServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type transactionRequest struct {
	Amount               float64  `json:"amount"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	SourceAccountID      string   `json:"sourceAccountId"`
	DestinationAccountID *string  `json:"destinationAccountId"`
	Date                 string   `json:"date"`
	Tags                 []string `json:"tags"`
	Recurring            bool     `json:"recurring"`
}

type transactionResponse struct {
	ID                   string   `json:"id"`
	Type                 string   `json:"type"`
	Amount               float64  `json:"amount"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	SourceAccountID      string   `json:"sourceAccountId"`
	DestinationAccountID *string  `json:"destinationAccountId,omitempty"`
	Date                 string   `json:"date"`
	Tags                 []string `json:"tags"`
	Recurring            bool     `json:"recurring"`
}

func toTransactionResponse(transaction domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:                   transaction.ID,
		Type:                 transaction.Type,
		Amount:               transaction.Amount,
		Description:          transaction.Description,
		Category:             transaction.Category,
		SourceAccountID:      transaction.SourceAccountID,
		DestinationAccountID: transaction.DestinationAccountID,
		Date:                 transaction.Date.Format(time.RFC3339),
		Tags:                 transaction.Tags,
		Recurring:            transaction.Recurring,
	}
}

func (h *TransactionHandler) decodeTransaction(w http.ResponseWriter, r *http.Request) (*domain.Transaction, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	transaction := &domain.Transaction{
		UserID:               userID,
		Amount:               req.Amount,
		Description:          req.Description,
		Category:             req.Category,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Tags:                 req.Tags,
		Recurring:            req.Recurring,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			date, err = time.Parse(time.RFC3339, req.Date)
		}
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid date format")
			return nil, false
		}
		transaction.Date = date
	}
	return transaction, true
}

func (h *TransactionHandler) respondMutationError(w http.ResponseWriter, err error) {
	if ledgerErrors.IsValidationError(err) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ledgerErrors.IsNotFoundError(err) {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Println("Error during transaction mutation:", err.Error())
	h.respondError(w, http.StatusInternalServerError, "Failed to process transaction")
}

func (h *TransactionHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	transaction, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}
	if err := h.service.CreateIncome(transaction); err != nil {
		h.respondMutationError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Income added successfully.",
		"data":    toTransactionResponse(*transaction),
	})
}

func (h *TransactionHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	transaction, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}
	if err := h.service.CreateExpense(transaction); err != nil {
		h.respondMutationError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense added successfully.",
		"data":    toTransactionResponse(*transaction),
	})
}

func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	transaction, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}
	if err := h.service.CreateTransfer(transaction); err != nil {
		h.respondMutationError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transfer completed successfully.",
		"data":    toTransactionResponse(*transaction),
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID := r.PathValue("transactionID")
	if err := h.service.DeleteTransaction(userID, transactionID); err != nil {
		h.respondMutationError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction deleted successfully.",
	})
}

func (h *TransactionHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactionType := r.URL.Query().Get("type")
	if !domain.IsValidTransactionType(transactionType) {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	filter := domain.TransactionFilter{Type: transactionType}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start date format")
			return
		}
		filter.StartDate = parsed
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
		filter.EndDate = parsed
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = parsed
	}

	transactions, err := h.service.GetUserTransactions(userID, filter)
	if err != nil {
		log.Println("Error fetching transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	responses := make([]transactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, toTransactionResponse(transaction))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *TransactionHandler) GetRecentTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactions, err := h.service.GetRecentTransactions(userID)
	if err != nil {
		log.Println("Error fetching recent transactions:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	responses := make([]transactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, toTransactionResponse(transaction))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}
