package domain

type ContextKey string

const UserContextKey ContextKey = "user"

// User is the authenticated identity the auth middleware places in the
// request context. Tokens are issued by the external identity service;
// this backend only validates them.
type User struct {
	ID    string `json:"id"` // UUID
	Email string `json:"email"`
	Role  string `json:"role"`
}
