package session

// Status is the client's current authentication state.
//
// Invariants: identity is held only while Authenticated; a durable token
// exists only while Authenticating or Authenticated. Exactly one session
// exists per running client.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated" // No session; initial state
	StatusAuthenticating  Status = "authenticating"  // Login or startup identity fetch in progress
	StatusAuthenticated   Status = "authenticated"   // Identity fetched, token stored
	StatusInvalid         Status = "invalid"         // Local state unreliable (teardown failed)
)

// Identity is the authenticated user as reported by the server. It is never
// trusted from client state alone: IsAdmin only controls UI affordances,
// and every admin-gated operation is re-validated server-side.
type Identity struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
