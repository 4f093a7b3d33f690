package users

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-taskassign/gateway"
	"github.com/pkg/errors"
)

// Client calls the user endpoints of the task server through the gateway.
// Registration is admin-gated server-side; the client sends the request
// regardless and surfaces the permission error if rejected.
type Client struct {
	gw *gateway.Gateway
}

// NewClient initializes a user API client.
func NewClient(gw *gateway.Gateway) (*Client, error) {
	if gw == nil {
		return nil, errors.New("[users.NewClient] gateway is required")
	}
	return &Client{gw: gw}, nil
}

// List retrieves all users. The server restricts this to authenticated
// callers.
func (c *Client) List(ctx context.Context) ([]User, error) {
	var list []User
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/api/users/getAll", nil, &list); err != nil {
		return nil, errors.Wrap(err, "[Client.List] get users")
	}
	return list, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Register creates a new user. Requires an admin session server-side.
func (c *Client) Register(ctx context.Context, email, password string, isAdmin bool) (User, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return User{}, errors.Wrap(err, "[Client.Register] weak password")
	}

	var created User
	body := registerRequest{Email: email, Password: password, IsAdmin: isAdmin}
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/api/users/register", body, &created); err != nil {
		return User{}, errors.Wrap(err, "[Client.Register] register user")
	}
	return created, nil
}
