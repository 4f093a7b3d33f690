package config

import (
	"time"
)

const (
	baseURLVar        = "TASK_SERVER_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"
)

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the base URL of the remote task server
// (e.g. "https://tasks.example.com"). All API paths are relative to it.
func (Client) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:3000")
}

// GetRequestTimeout is the fixed per-request timeout applied by the gateway.
func (Client) GetRequestTimeout() time.Duration {
	timeout := GetEnv(requestTimeoutVar, "")
	if timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			return d
		}
	}
	return 10 * time.Second
}
