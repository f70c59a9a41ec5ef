package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ayushsdevforge/pockettune-server/internal/user"
)

type Handler struct {
	authService Service
}

func NewHandler(authService Service) *Handler {
	return &Handler{authService: authService}
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

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		TOTPCode string `json:"totpCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, account, err := h.authService.Login(req.Email, req.Password, req.TOTPCode)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, ErrInvalidTwoFactorCode):
			respondError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrTwoFactorCodeRequired):
			respondJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"status":  "2fa_required",
				"message": err.Error(),
			})
		default:
			respondError(w, http.StatusInternalServerError, "Could not log in")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Logged in successfully.",
		"data": map[string]interface{}{
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"user":         account,
		},
	})
}

func (h *Handler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidJWTRefreshToken) || errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not refresh token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"accessToken": accessToken,
		},
	})
}

func (h *Handler) HandleRegisterTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	secret, otpauthURL, err := h.authService.RegisterTwoFactor(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not register two-factor authentication")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]string{
			"secret":     secret,
			"otpauthUrl": otpauthURL,
		},
	})
}

func (h *Handler) HandleVerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondError(w, http.StatusBadRequest, "Verification code is required")
		return
	}

	if err := h.authService.VerifyTwoFactor(userID, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrInvalidTwoFactorCode), errors.Is(err, ErrTwoFactorNotConfigured):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Could not verify two-factor authentication")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Two-factor authentication enabled.",
	})
}
