package clients

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
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
	case errors.Is(err, ErrClientNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrZeroAdjustment):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Println("Client handler error:", err.Error())
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

type clientRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	ContactPerson string  `json:"contactPerson"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Description   string  `json:"description"`
	Balance       float64 `json:"balance"`
}

type clientUpdateRequest struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Description   *string `json:"description"`
}

func (h *Handler) HandleCreateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	client := &Client{
		UserID:        userID,
		Name:          req.Name,
		Type:          req.Type,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Description:   req.Description,
		Balance:       req.Balance,
	}
	if err := h.service.CreateClient(client); err != nil {
		respondServiceError(w, err, "Failed to create client")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Client created successfully.",
		"data":    client,
	})
}

func (h *Handler) HandleGetClients(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	result, err := h.service.GetClients(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch clients")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

func (h *Handler) HandleUpdateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req clientUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	client, err := h.service.UpdateClient(userID, r.PathValue("clientID"), ClientUpdate{
		Name:          req.Name,
		Type:          req.Type,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Description:   req.Description,
	})
	if err != nil {
		respondServiceError(w, err, "Failed to update client")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Client updated successfully.",
		"data":    client,
	})
}

func (h *Handler) HandleDeleteClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteClient(userID, r.PathValue("clientID")); err != nil {
		respondServiceError(w, err, "Failed to delete client")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Client deleted successfully.",
	})
}

func (h *Handler) HandleAdjustBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	client, err := h.service.AdjustBalance(userID, r.PathValue("clientID"), req.Amount)
	if err != nil {
		respondServiceError(w, err, "Failed to adjust client balance")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Client balance adjusted successfully.",
		"data":    client,
	})
}

func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch client summary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}
