package totp

type TOTPGeneratorType interface {
	ValidateTOTP(token string, secret string) bool
	GenerateTOTPCode(secret string) (*string, error)
	GenerateSecret(accountName string) (secretKey *string, url *string, err error)
}
