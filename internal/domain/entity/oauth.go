package entity

import "time"

// OAuthState correlates an authorization request with its callback.
// States are single-use and expire; the callback consumes them.
type OAuthState struct {
	State       string    // Opaque random value embedded in the authorization URL.
	Provider    string    // Provider the state was issued for ("google", "github").
	RedirectURI string    // Redirect URI supplied on the authorize call.
	ExpiresAt   time.Time // States past this instant are rejected.
	CreatedAt   time.Time // Timestamp of the authorize call.
}

// Expired reports whether the state is past its validity window.
func (s *OAuthState) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
