package application

// Client-facing messages for the negative auth outcomes. Both are carried in a
// 200 response body; existing clients key on the message, not the status code.
const (
	MessageLoginFailed  = "Username and password doesn't exists."
	MessageUnauthorized = "unauthorized user"
)

// LoginResult is the outcome of a login attempt. A failed attempt is not an
// error: Authenticated is false and Message carries the client-facing text.
type LoginResult struct {
	Authenticated bool
	// User is the sanitized stored record with _key, _rev and auth_key merged
	// in. Never contains a password field.
	User      map[string]any
	AuthKey   string
	SessionID string
	Message   string
}

// VerifyResult is the outcome of an auth-key lookup. A missing key is a
// negative result, not an error; any other lookup failure propagates.
type VerifyResult struct {
	Authorized bool
	Record     map[string]any
	Message    string
}

// CategoryName is one row of the category listing projection.
type CategoryName struct {
	Category string `json:"category"`
}
