package entity

// Credential represents a single login credential in the auth service's own
// table, keyed by username. It is seeded at process start and is independent
// of the user store.
type Credential struct {
	Username     string // The key; one entry per username.
	PasswordHash string // bcrypt hash of the password.
	Role         Role   // Role dispatched on during login.
	Email        string // Contact email, matched during password reset.
}
