package interfaces

// TokenManager issues and verifies bearer tokens
type TokenManager interface {
	Issue(identity Identity) (string, error)
	// Verify returns an error wrapping entities.ErrUnauthorized for any invalid token
	Verify(token string) (*Identity, error)
}

// PasswordHasher hashes and checks user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns an error wrapping entities.ErrUnauthorized on mismatch
	Compare(hash, password string) error
}
