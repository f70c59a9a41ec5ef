package auth

import (
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "PocketTune"

type TOTPManagerInterface interface {
	GenerateSecret(accountName string) (secret string, otpauthURL string, err error)
	VerifyCode(code, secret string) bool
}

type TOTPManager struct{}

func NewTOTPManager() TOTPManagerInterface {
	return &TOTPManager{}
}

func (m *TOTPManager) GenerateSecret(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func (m *TOTPManager) VerifyCode(code, secret string) bool {
	return totp.Validate(code, secret)
}
