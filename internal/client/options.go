package client

import "time"

// Option configures a Driver.
type Option func(*Driver)

// WithDialTimeout overrides the default timeout used when dialing the
// server.
func WithDialTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.dialTimeout = timeout
	}
}

// WithMaxRetries overrides the default number of dial retries.
func WithMaxRetries(maxRetries int) Option {
	return func(d *Driver) {
		d.maxRetries = maxRetries
	}
}
