package lending

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
	case errors.Is(err, ErrRecordNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrPersonRequired),
		errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidInterest),
		errors.Is(err, ErrAlreadySettled):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Println("Lending handler error:", err.Error())
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

type recordRequest struct {
	Type         string  `json:"type"`
	PersonName   string  `json:"personName"`
	Contact      string  `json:"contact"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interestRate"`
	DueDate      string  `json:"dueDate"`
	Description  string  `json:"description"`
	AccountID    string  `json:"accountId"`
}

type recordUpdateRequest struct {
	PersonName   *string  `json:"personName"`
	Contact      *string  `json:"contact"`
	Amount       *float64 `json:"amount"`
	InterestRate *float64 `json:"interestRate"`
	DueDate      *string  `json:"dueDate"`
	Description  *string  `json:"description"`
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Parse(time.RFC3339, raw)
	}
	return date, nil
}

func (h *Handler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	record := &Record{
		UserID:       userID,
		Type:         req.Type,
		PersonName:   req.PersonName,
		Contact:      req.Contact,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Description:  req.Description,
		AccountID:    req.AccountID,
	}
	if req.DueDate != "" {
		date, err := parseDate(req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due date format")
			return
		}
		record.DueDate = &date
	}
	if err := h.service.CreateRecord(record); err != nil {
		respondServiceError(w, err, "Failed to create lending record")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Lending record created successfully.",
		"data":    record,
	})
}

func (h *Handler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	records, err := h.service.GetRecords(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch lending records")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   records,
	})
}

func (h *Handler) HandleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req recordUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	update := RecordUpdate{
		PersonName:   req.PersonName,
		Contact:      req.Contact,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Description:  req.Description,
	}
	if req.DueDate != nil {
		date, err := parseDate(*req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due date format")
			return
		}
		update.DueDate = &date
	}
	record, err := h.service.UpdateRecord(userID, r.PathValue("recordID"), update)
	if err != nil {
		respondServiceError(w, err, "Failed to update lending record")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Lending record updated successfully.",
		"data":    record,
	})
}

func (h *Handler) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRecord(userID, r.PathValue("recordID")); err != nil {
		respondServiceError(w, err, "Failed to delete lending record")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Lending record deleted successfully.",
	})
}

func (h *Handler) HandleSettleRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	record, err := h.service.SettleRecord(userID, r.PathValue("recordID"))
	if err != nil {
		respondServiceError(w, err, "Failed to settle lending record")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Lending record settled successfully.",
		"data":    record,
	})
}

func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch lending summary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}
