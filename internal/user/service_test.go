package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	users map[string]*User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*User{}}
}

func (m *mockUserRepository) createUser(newUser *User) error {
	newUser.ID = "user-" + newUser.Username
	stored := *newUser
	m.users[newUser.ID] = &stored
	return nil
}

func (m *mockUserRepository) getUserByEmail(email string) (*User, error) {
	for _, account := range m.users {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) getUserByID(id string) (*User, error) {
	account, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *mockUserRepository) updateTOTPSecret(userID, secret string) error {
	account, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	account.TOTPSecret = secret
	return nil
}

func (m *mockUserRepository) updateTwoFactorEnabled(userID string, enabled bool) error {
	account, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	account.TwoFactorEnabled = enabled
	return nil
}

func TestRegister_HashesPasswordAndStoresUser(t *testing.T) {
	svc := NewUserService(newMockUserRepository())

	registered, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.NotEqual(t, "password123", registered.PasswordHash)

	authenticated, err := svc.Authenticate("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authenticated.ID)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(newMockUserRepository())

	_, err := svc.Register("alice", "not-an-email", "password123")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register("al", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Register("alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newMockUserRepository())

	_, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register("alice2", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthenticate_RejectsWrongPassword(t *testing.T) {
	svc := NewUserService(newMockUserRepository())

	_, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Authenticate("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("missing@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
