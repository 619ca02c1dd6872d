// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig carries everything specific to this
// service. The struct is passed to the lifecycle hooks, so anything
// needed during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Token configuration
	JWTSecret       string        // HMAC signing secret for access and refresh tokens
	AccessTokenTTL  time.Duration // Access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 720h)

	// Per-IP rate limits, requests per minute
	RegisterRateLimit int // POST /register
	LoginRateLimit    int // POST /login
	GlobalRateLimit   int // everything else
}
