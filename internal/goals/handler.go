package goals

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
	case errors.Is(err, ErrGoalNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrGoalCompleted):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Println("Goal handler error:", err.Error())
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

type goalRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Category      string  `json:"category"`
	Priority      string  `json:"priority"`
	TargetDate    string  `json:"targetDate"`
}

type goalUpdateRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	TargetAmount *float64 `json:"targetAmount"`
	Category     *string  `json:"category"`
	Priority     *string  `json:"priority"`
	TargetDate   *string  `json:"targetDate"`
}

func parseTargetDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Parse(time.RFC3339, raw)
	}
	return date, nil
}

func (h *Handler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal := &Goal{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Category:      req.Category,
		Priority:      req.Priority,
	}
	if req.TargetDate != "" {
		date, err := parseTargetDate(req.TargetDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid target date format")
			return
		}
		goal.TargetDate = &date
	}
	if err := h.service.CreateGoal(goal); err != nil {
		respondServiceError(w, err, "Failed to create goal")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Goal created successfully.",
		"data":    goal,
	})
}

func (h *Handler) HandleGetGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	result, err := h.service.GetGoals(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch goals")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

func (h *Handler) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	var req goalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	update := GoalUpdate{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
		Priority:     req.Priority,
	}
	if req.TargetDate != nil {
		date, err := parseTargetDate(*req.TargetDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid target date format")
			return
		}
		update.TargetDate = &date
	}
	goal, err := h.service.UpdateGoal(userID, r.PathValue("goalID"), update)
	if err != nil {
		respondServiceError(w, err, "Failed to update goal")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal updated successfully.",
		"data":    goal,
	})
}

func (h *Handler) HandleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteGoal(userID, r.PathValue("goalID")); err != nil {
		respondServiceError(w, err, "Failed to delete goal")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal deleted successfully.",
	})
}

func (h *Handler) HandleAddToGoal(w http.ResponseWriter, r *http.Request) {
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
	goal, err := h.service.AddToGoal(userID, r.PathValue("goalID"), req.Amount)
	if err != nil {
		respondServiceError(w, err, "Failed to add to goal")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Contribution added successfully.",
		"data":    goal,
	})
}

func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(w, r)
	if !ok {
		return
	}
	summary, err := h.service.GetSummary(userID)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch goal summary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}
