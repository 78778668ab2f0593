package security

// TokenService issues and verifies session tokens
type TokenService interface {
	// Issue signs a token carrying the user ID
	Issue(userID string) (string, error)

	// Parse verifies a token and returns the user ID claim
	// A verified token without an ID returns an empty string and no error
	//
	// Possible errors:
	// - ErrInvalidToken: If the token is malformed, expired or badly signed
	Parse(token string) (string, error)
}
