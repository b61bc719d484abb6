package auth

type ClaimsData struct {
	UserID    string
	ExpiresAt int64
	IssuedAt  int64
	DeviceID  string
}
