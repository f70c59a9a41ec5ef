package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayushsdevforge/pockettune-server/internal/user"
)

type mockUserService struct {
	users map[string]*user.User
}

func newMockUserService() *mockUserService {
	return &mockUserService{users: map[string]*user.User{}}
}

func (m *mockUserService) addUser(id, email, password string, twoFactor bool, secret string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.users[id] = &user.User{
		ID:               id,
		Email:            email,
		PasswordHash:     string(hash),
		TwoFactorEnabled: twoFactor,
		TOTPSecret:       secret,
	}
}

func (m *mockUserService) Register(username, email, password string) (*user.User, error) {
	panic("implement me")
}

func (m *mockUserService) Authenticate(email, password string) (*user.User, error) {
	for _, account := range m.users {
		if account.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
			return nil, user.ErrInvalidCredentials
		}
		return account, nil
	}
	return nil, user.ErrInvalidCredentials
}

func (m *mockUserService) GetUserByID(userID string) (*user.User, error) {
	account, ok := m.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return account, nil
}

func (m *mockUserService) SetTOTPSecret(userID, secret string) error {
	account, ok := m.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	account.TOTPSecret = secret
	return nil
}

func (m *mockUserService) EnableTwoFactor(userID string) error {
	account, ok := m.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	account.TwoFactorEnabled = true
	return nil
}

type mockJWTManager struct{}

func (m *mockJWTManager) GenerateAccessJWT(userID string, duration time.Duration) (string, error) {
	return "access-" + userID, nil
}

func (m *mockJWTManager) ValidateAccessToken(tokenString string) (string, error) {
	if len(tokenString) > 7 && tokenString[:7] == "access-" {
		return tokenString[7:], nil
	}
	return "", ErrInvalidJWTToken
}

func (m *mockJWTManager) GenerateRefreshJWT(userID string, duration time.Duration) (string, error) {
	return "refresh-" + userID, nil
}

func (m *mockJWTManager) ValidateRefreshToken(tokenString string) (string, error) {
	if len(tokenString) > 8 && tokenString[:8] == "refresh-" {
		return tokenString[8:], nil
	}
	return "", ErrInvalidJWTRefreshToken
}

type mockTOTPManager struct {
	validCode string
}

func (m *mockTOTPManager) GenerateSecret(accountName string) (string, string, error) {
	return "secret", "otpauth://totp/PocketTune:" + accountName, nil
}

func (m *mockTOTPManager) VerifyCode(code, secret string) bool {
	return code == m.validCode
}

func newTestAuthService(users *mockUserService, validCode string) Service {
	return NewAuthService(users, &mockJWTManager{}, &mockTOTPManager{validCode: validCode})
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-1", "a@b.com", "password123", false, "")
	svc := newTestAuthService(users, "")

	tokens, account, err := svc.Login("a@b.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, "access-user-1", tokens.AccessToken)
	assert.Equal(t, "refresh-user-1", tokens.RefreshToken)
	assert.Equal(t, "user-1", account.ID)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-1", "a@b.com", "password123", false, "")
	svc := newTestAuthService(users, "")

	_, _, err := svc.Login("a@b.com", "wrong", "")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, _, err = svc.Login("missing@b.com", "password123", "")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_TwoFactorGating(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-1", "a@b.com", "password123", true, "secret")
	svc := newTestAuthService(users, "123456")

	_, _, err := svc.Login("a@b.com", "password123", "")
	assert.ErrorIs(t, err, ErrTwoFactorCodeRequired)

	_, _, err = svc.Login("a@b.com", "password123", "000000")
	assert.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	tokens, _, err := svc.Login("a@b.com", "password123", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestRefreshAccessToken(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-1", "a@b.com", "password123", false, "")
	svc := newTestAuthService(users, "")

	accessToken, err := svc.RefreshAccessToken("refresh-user-1")
	require.NoError(t, err)
	assert.Equal(t, "access-user-1", accessToken)

	_, err = svc.RefreshAccessToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidJWTRefreshToken)

	_, err = svc.RefreshAccessToken("refresh-deleted-user")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestVerifyTwoFactor_EnablesFlag(t *testing.T) {
	users := newMockUserService()
	users.addUser("user-1", "a@b.com", "password123", false, "")
	svc := newTestAuthService(users, "123456")

	assert.ErrorIs(t, svc.VerifyTwoFactor("user-1", "123456"), ErrTwoFactorNotConfigured)

	secret, otpauthURL, err := svc.RegisterTwoFactor("user-1")
	require.NoError(t, err)
	assert.Equal(t, "secret", secret)
	assert.Contains(t, otpauthURL, "otpauth://")

	assert.ErrorIs(t, svc.VerifyTwoFactor("user-1", "999999"), ErrInvalidTwoFactorCode)
	require.NoError(t, svc.VerifyTwoFactor("user-1", "123456"))

	account, err := users.GetUserByID("user-1")
	require.NoError(t, err)
	assert.True(t, account.TwoFactorEnabled)
}
