package ports

// PasswordHasher hashes and verifies login passwords.
// Verify must treat an absent or malformed stored hash exactly like a mismatch,
// so an unknown user and a wrong password share one failure path.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// SessionCodec signs and parses the value carried by the session cookie.
// Only the session id crosses the wire; session state stays server-side.
type SessionCodec interface {
	Sign(sessionID string) (string, error)
	Parse(value string) (string, error)
}
