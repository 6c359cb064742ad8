// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants collects the fixed values shared across layers: server
// timeouts, rate limits, header names and storage key prefixes.
package constants

import "time"

const (
	AppName    = "kanoon-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a whole request. It is also the per
	// connection statement_timeout in postgres.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS and DefaultRateLimitBurst size the per-IP token bucket.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	RateLimitCleanupInterval = time.Minute
	// RateLimitClientTTL is the idle time after which an IP's bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	AuthIssuer = "kanoon"

	// HeaderAuthorization carries 'Token <t>' on guarded routes and
	// 'Basic <creds>' on the token endpoint.
	HeaderAuthorization   = "Authorization"
	HeaderWWWAuthenticate = "WWW-Authenticate"

	// RedisPrefixLoginFailures counts failed basic-auth attempts per login.
	RedisPrefixLoginFailures = "auth:login_failures:"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
)

const MetricsNamespace = "kanoon"
