package client

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) error {
		if token != "" {
			c.http.SetAuthToken(token)
		}
		return nil
	}
}

// WithHTTPTimeout bounds a single HTTP attempt. Prefer context deadlines
// for the overall call.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithRetry configures how idempotent calls are retried on transport
// failures and 502/503/504 replies. maxAttempts counts the first try.
func WithRetry(maxAttempts int, base, maxInterval time.Duration) Option {
	return func(c *Client) error {
		if maxAttempts < 1 {
			return fmt.Errorf("maxAttempts must be >= 1")
		}
		if base <= 0 || maxInterval < base {
			return fmt.Errorf("invalid backoff interval")
		}
		c.maxAttempts = maxAttempts
		c.baseBackoff = base
		c.maxInterval = maxInterval
		return nil
	}
}
