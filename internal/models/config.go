package models

import "time"

// ClientConfig contains runtime options for the HTTP client.
type ClientConfig struct {
	Proxies           []string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
}
