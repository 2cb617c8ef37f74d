// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig is where everything specific to this service lives: the Mongo
// connection, pool sizing, and the operation timeout tiers the stores use.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Operation timeout tiers (see internal/app/system/timeouts)
	TimeoutPing   time.Duration // health checks and connectivity
	TimeoutShort  time.Duration // single-document reads and writes
	TimeoutMedium time.Duration // list queries, multi-step reads
	TimeoutLong   time.Duration // ranking passes over several collections
}
