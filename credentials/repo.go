package credentials

// TokenKey is the single fixed key the client persists. The store holds one
// opaque bearer token and nothing else; expiry is decided by the server
// rejecting it, never by local metadata.
const TokenKey = "task_manager_auth_token"

// Repo defines the interface for durable credential storage. Exactly one
// value lives under TokenKey; implementations must serialize writes so a
// stale Clear can never race a fresh Store.
type Repo interface {
	// Store overwrites the persisted token
	Store(token string) error

	// Get retrieves the persisted token, or "" if never set
	Get() (string, error)

	// Clear removes the persisted token; clearing an absent token is not an error
	Clear() error
}
