package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	ledgerErrors "github.com/ayushsdevforge/pockettune-server/internal/ledger/errors"
)

func authenticatedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
}

func TestCreateExpense_Success(t *testing.T) {
	service := &MockLedgerService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"amount":          150.5,
		"description":     "Groceries",
		"category":        "Food & Dining",
		"sourceAccountId": "acc-1",
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/transactions/expense", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response["status"])

	assert.Len(t, service.Transactions, 1)
	assert.Equal(t, "user-1", service.Transactions[0].UserID)
	assert.Equal(t, "acc-1", service.Transactions[0].SourceAccountID)
}

func TestCreateExpense_Unauthorized(t *testing.T) {
	handler := NewTransactionHandler(&MockLedgerService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/expense", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateExpense_InvalidBody(t *testing.T) {
	handler := NewTransactionHandler(&MockLedgerService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/transactions/expense", []byte("not json")))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Invalid request body", response["message"])
}

func TestCreateExpense_ValidationErrorMapsTo400(t *testing.T) {
	service := &MockLedgerService{Err: ledgerErrors.ErrInvalidAmount}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/transactions/expense", []byte("{}")))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreateTransfer_MissingAccountMapsTo404(t *testing.T) {
	service := &MockLedgerService{Err: ledgerErrors.ErrAccountNotFound}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateTransfer(w, authenticatedRequest(http.MethodPost, "/api/transactions/transfer", []byte("{}")))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCreateIncome_InvalidDate(t *testing.T) {
	handler := NewTransactionHandler(&MockLedgerService{}, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"amount":          100,
		"description":     "Paycheck",
		"sourceAccountId": "acc-1",
		"date":            "15-07-2024",
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.CreateIncome(w, authenticatedRequest(http.MethodPost, "/api/transactions/income", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteTransaction_Success(t *testing.T) {
	service := &MockLedgerService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/transactions/tx-9", nil)
	req.SetPathValue("transactionID", "tx-9")
	w := httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{"tx-9"}, service.Deleted)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	service := &MockLedgerService{Err: ledgerErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/transactions/missing", nil)
	req.SetPathValue("transactionID", "missing")
	w := httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetUserTransactions_RejectsBadQuery(t *testing.T) {
	handler := NewTransactionHandler(&MockLedgerService{}, respondJSON, respondError)

	for _, target := range []string{
		"/api/transactions?type=loan",
		"/api/transactions?limit=abc",
		"/api/transactions?start_date=July",
	} {
		w := httptest.NewRecorder()
		handler.GetUserTransactions(w, authenticatedRequest(http.MethodGet, target, nil))

		res := w.Result()
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "target %s", target)
	}
}

func TestGetUserTransactions_Success(t *testing.T) {
	service := &MockLedgerService{}
	handler := NewTransactionHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"amount":          25,
		"description":     "Bus ticket",
		"category":        "Transportation",
		"sourceAccountId": "acc-1",
	})
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/transactions/expense", body))

	w = httptest.NewRecorder()
	handler.GetUserTransactions(w, authenticatedRequest(http.MethodGet, "/api/transactions?type=expense&limit=5", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Status string                `json:"status"`
		Data   []transactionResponse `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "success", response.Status)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Bus ticket", response.Data[0].Description)
}
