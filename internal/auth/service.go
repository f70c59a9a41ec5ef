package auth

import (
	"errors"
	"net/http"

	"github.com/ayushsdevforge/pockettune-server/internal/user"
)

var (
	ErrTwoFactorCodeRequired  = errors.New("two-factor authentication code is required")
	ErrInvalidTwoFactorCode   = errors.New("two-factor authentication code is invalid")
	ErrTwoFactorNotConfigured = errors.New("two-factor authentication is not configured")
	ErrUserNotFound           = user.ErrUserNotFound
	ErrInternalError          = user.ErrInternalError
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Login(email, password, totpCode string) (*TokenPair, *user.User, error)
	RefreshAccessToken(refreshToken string) (string, error)
	RegisterTwoFactor(userID string) (secret string, otpauthURL string, err error)
	VerifyTwoFactor(userID, code string) error
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
	totpManager TOTPManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, totpManager TOTPManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
		totpManager: totpManager,
	}
}

// Login authenticates credentials and, when the account has 2FA enabled,
// requires a valid TOTP code before issuing tokens.
func (s *service) Login(email, password, totpCode string) (*TokenPair, *user.User, error) {
	authenticated, err := s.userService.Authenticate(email, password)
	if err != nil {
		return nil, nil, err
	}

	if authenticated.TwoFactorEnabled {
		if totpCode == "" {
			return nil, nil, ErrTwoFactorCodeRequired
		}
		if !s.totpManager.VerifyCode(totpCode, authenticated.TOTPSecret) {
			return nil, nil, ErrInvalidTwoFactorCode
		}
	}

	accessToken, err := s.jwtManager.GenerateAccessJWT(authenticated.ID, defaultJWTDuration)
	if err != nil {
		return nil, nil, ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(authenticated.ID, defaultJWTRefreshDuration)
	if err != nil {
		return nil, nil, ErrInternalError
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, authenticated, nil
}

func (s *service) RefreshAccessToken(refreshToken string) (string, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	if _, err := s.userService.GetUserByID(userID); err != nil {
		return "", err
	}
	return s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
}

// RegisterTwoFactor generates and stores a fresh TOTP secret. The account
// flag flips only after the first successful VerifyTwoFactor.
func (s *service) RegisterTwoFactor(userID string) (string, string, error) {
	account, err := s.userService.GetUserByID(userID)
	if err != nil {
		return "", "", err
	}
	secret, otpauthURL, err := s.totpManager.GenerateSecret(account.Email)
	if err != nil {
		return "", "", ErrInternalError
	}
	if err := s.userService.SetTOTPSecret(userID, secret); err != nil {
		return "", "", ErrInternalError
	}
	return secret, otpauthURL, nil
}

func (s *service) VerifyTwoFactor(userID, code string) error {
	account, err := s.userService.GetUserByID(userID)
	if err != nil {
		return err
	}
	if account.TOTPSecret == "" {
		return ErrTwoFactorNotConfigured
	}
	if !s.totpManager.VerifyCode(code, account.TOTPSecret) {
		return ErrInvalidTwoFactorCode
	}
	return s.userService.EnableTwoFactor(userID)
}
