package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-taskassign/credentials"
	errs "github.com/jrsteele09/go-taskassign/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AuthTokenHeader is the custom header the task server reads the session
// token from on every authenticated call.
const AuthTokenHeader = "x-auth-token"

const requestIDHeader = "x-request-id"

const defaultRequestTimeout = 10 * time.Second

// Gateway dispatches HTTP calls to the remote task server. It reads the
// current token from the credential store immediately before every dispatch
// (never a capture from an earlier call) and attaches it as AuthTokenHeader.
//
// A 401 on a call that carried a token is the sole trigger for session
// invalidation: the gateway clears the credential store exactly once for
// that response, notifies the registered observer, and surfaces the failure
// as ErrSessionExpired. No retry, backoff, or re-authentication is ever
// attempted; the server has no refresh mechanism.
type Gateway struct {
	baseURL string
	creds   credentials.Repo
	client  *http.Client
	timeout time.Duration
	log     zerolog.Logger

	onSessionExpired func()
}

// Option defines a function type to modify the Gateway instance.
type Option func(*Gateway)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.client = client
	}
}

// WithTimeout sets the fixed per-request timeout. It is applied after all
// options run, so it holds regardless of option order, including on a
// client supplied via WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

// WithLogger sets the request logger (defaults to a disabled logger).
func WithLogger(log zerolog.Logger) Option {
	return func(g *Gateway) {
		g.log = log
	}
}

// New initializes a Gateway for the server at baseURL with required
// dependencies. Optional configuration can be provided via options.
func New(baseURL string, creds credentials.Repo, options ...Option) (*Gateway, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[gateway.New] baseURL is required")
	}
	if creds == nil {
		return nil, errors.New("[gateway.New] credentials repo is required")
	}

	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client:  &http.Client{Timeout: defaultRequestTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(g)
	}
	if g.timeout > 0 {
		g.client.Timeout = g.timeout
	}
	return g, nil
}

// OnSessionExpired registers the observer invoked after the gateway has
// purged the credential store in response to a 401. Registered once at
// construction time by the session manager; the gateway never mutates
// session state directly.
func (g *Gateway) OnSessionExpired(fn func()) {
	g.onSessionExpired = fn
}

// DoJSON sends a request with an optional JSON body and decodes a JSON
// response into out (skipped when out is nil).
func (g *Gateway) DoJSON(ctx context.Context, method, path string, body any, out any) error {
	return g.doJSON(ctx, method, path, body, out, true)
}

// DoJSONUnauthenticated sends a JSON request that deliberately omits the
// stored token. Used for the login endpoint, which is unauthenticated by
// contract: its 401 is always a credentials rejection and can never purge
// a token the user already holds.
func (g *Gateway) DoJSONUnauthenticated(ctx context.Context, method, path string, body any, out any) error {
	return g.doJSON(ctx, method, path, body, out, false)
}

func (g *Gateway) doJSON(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Gateway.doJSON] marshal %s %s body", method, path)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return g.do(ctx, method, path, contentType, reader, out, authed)
}

// DoMultipart sends a multipart/form-data request, used for file-bearing
// uploads such as task-completion evidence.
func (g *Gateway) DoMultipart(ctx context.Context, method, path string, form *Form, out any) error {
	contentType, reader, err := form.encode()
	if err != nil {
		return errors.Wrapf(err, "[Gateway.DoMultipart] encode %s %s body", method, path)
	}
	return g.do(ctx, method, path, contentType, reader, out, true)
}

func (g *Gateway) do(ctx context.Context, method, path, contentType string, body io.Reader, out any, authed bool) error {
	start := time.Now()
	requestID := uuid.New().String()

	token := ""
	if authed {
		var err error
		token, err = g.creds.Get()
		if err != nil {
			// A broken store degrades to an unauthenticated request; the server
			// answers 401 and the caller sees the session as dead.
			g.log.Warn().Err(err).Str("request_id", requestID).Msg("credential read failed, sending unauthenticated")
			token = ""
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "[Gateway.do] create request %s %s", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(AuthTokenHeader, token)
	}
	req.Header.Set(requestIDHeader, requestID)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn().Err(err).Str("request_id", requestID).Str("method", method).Str("path", path).Msg("request failed")
		if isTimeout(err) {
			return errs.Wrapf(errs.ErrNetworkUnavailable, "[Gateway.do] %s %s timed out", method, path)
		}
		return errs.Wrapf(errs.ErrNetworkUnavailable, "[Gateway.do] %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrapf(errs.ErrNetworkUnavailable, "[Gateway.do] read %s %s response: %v", method, path, err)
	}

	g.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return errors.Wrapf(err, "[Gateway.do] decode %s %s response", method, path)
		}
		return nil
	}

	return g.classify(resp.StatusCode, string(respBody), token != "")
}

// classify maps a failed response to a classified StatusError. authed
// reports whether the request carried a token; only those requests can
// expire a session.
func (g *Gateway) classify(statusCode int, body string, authed bool) error {
	switch {
	case statusCode == http.StatusUnauthorized && authed:
		g.expireSession()
		return newStatusError(statusCode, body, errs.ErrSessionExpired)
	case statusCode == http.StatusUnauthorized:
		// Requests dispatched without a token (the login endpoint) get their
		// 401 as a rejection of the submitted credentials.
		return newStatusError(statusCode, body, errs.ErrInvalidCredentials)
	case statusCode == http.StatusForbidden:
		return newStatusError(statusCode, body, errs.ErrPermissionDenied)
	case statusCode == http.StatusNotFound:
		return newStatusError(statusCode, body, errs.ErrNotFound)
	case statusCode >= 500:
		return newStatusError(statusCode, body, errs.ErrServer)
	default:
		return newStatusError(statusCode, body, errs.ErrInvalidRequest)
	}
}

func (g *Gateway) expireSession() {
	if err := g.creds.Clear(); err != nil {
		g.log.Error().Err(err).Msg("failed to purge expired credential")
	}
	if g.onSessionExpired != nil {
		g.onSessionExpired()
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
