package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 254
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	bcryptCost        = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrInvalidUsername    = fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInternalError      = errors.New("internal server error")
)

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	TOTPSecret       string    `json:"-"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Service interface {
	Register(username, email, password string) (*User, error)
	Authenticate(email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	SetTOTPSecret(userID, secret string) error
	EnableTwoFactor(userID string) error
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func validateRegistration(username, email, password string) error {
	if len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *service) Register(username, email, password string) (*User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	existing, err := s.repo.getUserByEmail(email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, ErrInternalError
	}

	newUser := &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.createUser(newUser); err != nil {
		return nil, ErrInternalError
	}
	return newUser, nil
}

func (s *service) Authenticate(email, password string) (*User, error) {
	found, err := s.repo.getUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrInternalError
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return found, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) SetTOTPSecret(userID, secret string) error {
	return s.repo.updateTOTPSecret(userID, secret)
}

func (s *service) EnableTwoFactor(userID string) error {
	return s.repo.updateTwoFactorEnabled(userID, true)
}
