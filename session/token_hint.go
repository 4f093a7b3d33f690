package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiryHint decodes the bearer token without verifying it and returns
// its exp claim when the token happens to be a JWT. Decode only: the server
// is the sole authority on expiry, there is no refresh endpoint, and the
// hint feeds nothing but a log line.
func tokenExpiryHint(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (m *Manager) logExpiryHint(token string) {
	exp, ok := tokenExpiryHint(token)
	if !ok {
		return
	}
	if exp.Before(m.nowTime()) {
		m.log.Warn().Time("expires_at", exp).Msg("stored token appears expired")
		return
	}
	m.log.Debug().Time("expires_at", exp).Msg("token expiry hint")
}
