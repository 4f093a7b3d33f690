package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/go-taskassign/credentials"
	"github.com/jrsteele09/go-taskassign/gateway"
	errs "github.com/jrsteele09/go-taskassign/internal/errors"
	"github.com/jrsteele09/go-taskassign/internal/utils"
	"github.com/jrsteele09/go-taskassign/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Deps holds all dependencies for the Manager
type Deps struct {
	Credentials credentials.Repo // Durable store for the bearer token
	Gateway     *gateway.Gateway // Authenticated request dispatch
	Users       *users.Client    // User registration endpoint
}

// Manager owns the authentication lifecycle: login, logout, startup resume
// and admin registration. It holds the in-memory session state behind
// explicit operations and registers itself as the gateway's session-expiry
// observer, so a 401 anywhere in the app transitions it back to
// Unauthenticated without a circular dependency.
type Manager struct {
	deps    Deps
	log     zerolog.Logger
	nowTime func() time.Time // nowTime function (injectable for testing)

	lock          sync.Mutex
	status        Status
	identity      *Identity
	loginInFlight bool
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithLogger sets the state-transition logger (defaults to a disabled logger).
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager initializes a new Manager with required dependencies.
// Optional configuration can be provided via options (e.g. WithNowTime for
// testing).
func NewManager(deps Deps, options ...ManagerOption) (*Manager, error) {
	if deps.Credentials == nil {
		return nil, errors.New("[NewManager] Credentials repo is required")
	}
	if deps.Gateway == nil {
		return nil, errors.New("[NewManager] Gateway is required")
	}
	if deps.Users == nil {
		return nil, errors.New("[NewManager] Users client is required")
	}

	m := &Manager{
		deps:    deps,
		log:     zerolog.Nop(),
		nowTime: time.Now,
		status:  StatusUnauthenticated,
	}
	for _, opt := range options {
		opt(m)
	}

	deps.Gateway.OnSessionExpired(m.sessionExpired)
	return m, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates with the server, stores the returned token and
// fetches the identity. The login request is dispatched without the stored
// token (the endpoint is unauthenticated by contract), so a rejected
// attempt surfaces ErrInvalidCredentials and leaves any existing session
// and its stored token untouched. The token written by a successful login
// is visible to the very next gateway call; a second login while one is in
// flight is rejected with ErrLoginInFlight rather than interleaved, so two
// attempts can never race writes to the credential store.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	prevStatus, prevIdentity, err := m.beginLogin()
	if err != nil {
		return err
	}
	defer m.endLogin()

	var resp loginResponse
	if err := m.deps.Gateway.DoJSONUnauthenticated(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		m.restore(prevStatus, prevIdentity)
		return errors.Wrap(err, "[Manager.Login] login request")
	}

	if err := m.deps.Credentials.Store(resp.Token); err != nil {
		m.restore(prevStatus, prevIdentity)
		return errors.Wrap(err, "[Manager.Login] store token")
	}

	identity, err := m.fetchIdentity(ctx)
	if err != nil {
		_ = m.deps.Credentials.Clear()
		m.setUnauthenticated()
		return errors.Wrap(err, "[Manager.Login] fetch identity")
	}

	m.setAuthenticated(identity)
	m.logExpiryHint(resp.Token)
	return nil
}

// Resume derives session state from the credential store at startup. A
// stored token triggers an identity fetch; on failure the token is purged
// and the session stays Unauthenticated. A storage fault on read degrades
// to Unauthenticated rather than failing startup.
func (m *Manager) Resume(ctx context.Context) error {
	token, err := m.deps.Credentials.Get()
	if err != nil {
		m.log.Warn().Err(err).Msg("credential read failed, starting unauthenticated")
		m.setUnauthenticated()
		return nil
	}
	if token == "" {
		m.setUnauthenticated()
		return nil
	}

	m.setStatus(StatusAuthenticating)
	m.logExpiryHint(token)

	identity, err := m.fetchIdentity(ctx)
	if err != nil {
		_ = m.deps.Credentials.Clear()
		m.setUnauthenticated()
		return errors.Wrap(err, "[Manager.Resume] fetch identity")
	}

	m.setAuthenticated(identity)
	return nil
}

// Logout purges the durable token and the in-memory identity. Safe to call
// when already unauthenticated. Returns whether the purge succeeded; on a
// storage fault local state is marked Invalid since the token may survive.
func (m *Manager) Logout() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.identity = nil
	if err := m.deps.Credentials.Clear(); err != nil {
		m.log.Error().Err(err).Msg("failed to purge token on logout")
		m.status = StatusInvalid
		return false
	}
	m.status = StatusUnauthenticated
	m.log.Debug().Msg("logged out")
	return true
}

// RegisterUser creates a new user. The local admin flag is not checked
// here: the server is the ultimate authority and rejects the call with
// ErrPermissionDenied when the session lacks admin rights.
func (m *Manager) RegisterUser(ctx context.Context, email, password string, isAdmin bool) (users.User, error) {
	user, err := m.deps.Users.Register(ctx, email, password, isAdmin)
	if err != nil {
		return users.User{}, errors.Wrap(err, "[Manager.RegisterUser] register")
	}
	m.log.Info().Str("email", user.Email).Bool("is_admin", user.IsAdmin).Msg("registered user")
	return user, nil
}

// CurrentIdentity returns the identity of the authenticated user. Pure
// in-memory read; never blocks, never fails.
func (m *Manager) CurrentIdentity() (Identity, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return utils.Value(m.identity), m.identity != nil
}

// Status returns the current session status.
func (m *Manager) Status() Status {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.status
}

// IsAdmin reports whether the current session carries the admin flag. UI
// affordance only; authorization happens server-side.
func (m *Manager) IsAdmin() bool {
	identity, ok := m.CurrentIdentity()
	return ok && identity.IsAdmin
}

func (m *Manager) fetchIdentity(ctx context.Context) (Identity, error) {
	var identity Identity
	if err := m.deps.Gateway.DoJSON(ctx, http.MethodGet, "/api/auth/me", nil, &identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// sessionExpired is invoked by the gateway after it has purged the
// credential store in response to a 401.
func (m *Manager) sessionExpired() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.status == StatusAuthenticated || m.status == StatusAuthenticating {
		m.log.Info().Msg("session expired, re-login required")
	}
	m.identity = nil
	m.status = StatusUnauthenticated
}

// beginLogin marks a login attempt in flight and snapshots the state it
// started from, so a failed attempt can put an intact session back.
func (m *Manager) beginLogin() (Status, *Identity, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.loginInFlight {
		return "", nil, errs.ErrLoginInFlight
	}
	m.loginInFlight = true
	prevStatus, prevIdentity := m.status, m.identity
	m.status = StatusAuthenticating
	return prevStatus, prevIdentity, nil
}

func (m *Manager) endLogin() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.loginInFlight = false
}

func (m *Manager) setAuthenticated(identity Identity) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.identity = &identity
	m.status = StatusAuthenticated
	m.log.Info().Str("user_id", identity.UserID).Bool("is_admin", identity.IsAdmin).Msg("authenticated")
}

// restore rolls state back after a login attempt that failed before it
// disturbed the credential store. Skipped if the gateway's expiry observer
// fired in the meantime; that transition wins.
func (m *Manager) restore(status Status, identity *Identity) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.status != StatusAuthenticating {
		return
	}
	m.status = status
	m.identity = identity
}

func (m *Manager) setUnauthenticated() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.identity = nil
	m.status = StatusUnauthenticated
}

func (m *Manager) setStatus(status Status) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.status = status
}
