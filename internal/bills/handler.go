package bills

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBillNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidFrequency):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Println("Bill handler error:", err.Error())
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func userIDFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

type billRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	AccountID   string  `json:"accountId"`
	Frequency   string  `json:"frequency"`
	DueDate     string  `json:"dueDate"`
}

type billUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	AccountID   *string  `json:"accountId"`
	Frequency   *string  `json:"frequency"`
	DueDate     *string  `json:"dueDate"`
	IsPaid      *bool    `json:"isPaid"`
}

func parseDueDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Parse(time.RFC3339, raw)
	}
	return date, nil
}

func (h *Handler) HandleCreateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	bill := &Bill{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		AccountID:   req.AccountID,
		Frequency:   req.Frequency,
	}
	if req.DueDate != "" {
		date, err := parseDueDate(req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due date format")
			return
		}
		bill.DueDate = date
	}
	if err := h.service.CreateBill(bill); err != nil {
		respondServiceError(w, err, "Failed to create bill")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Bill created successfully.",
		"data":    bill,
	})
}

func (h *Handler) HandleGetBills(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	bills, err := h.service.GetBills(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch bills")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   bills,
	})
}

func (h *Handler) HandleUpdateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req billUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	update := BillUpdate{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		AccountID:   req.AccountID,
		Frequency:   req.Frequency,
		IsPaid:      req.IsPaid,
	}
	if req.DueDate != nil {
		date, err := parseDueDate(*req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due date format")
			return
		}
		update.DueDate = &date
	}
	bill, err := h.service.UpdateBill(userID, r.PathValue("billID"), update)
	if err != nil {
		respondServiceError(w, err, "Failed to update bill")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Bill updated successfully.",
		"data":    bill,
	})
}

func (h *Handler) HandleDeleteBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteBill(userID, r.PathValue("billID")); err != nil {
		respondServiceError(w, err, "Failed to delete bill")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Bill deleted successfully.",
	})
}

func (h *Handler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	bill, err := h.service.MarkPaid(userID, r.PathValue("billID"))
	if err != nil {
		respondServiceError(w, err, "Failed to mark bill as paid")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Bill marked as paid.",
		"data":    bill,
	})
}

func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch bill summary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}
