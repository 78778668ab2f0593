package security

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns ErrInvalidCredentials when password does not match hash
	Compare(hash, password string) error
}
