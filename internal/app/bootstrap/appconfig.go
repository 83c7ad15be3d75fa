// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where everything specific to ShareHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// ResolverConcurrency caps the number of parallel store lookups one
	// resolution fans out to. Values < 1 use the engine default.
	ResolverConcurrency int

	// GrantSweepMinutes is the interval, in minutes, between runs of the
	// background sweep that removes dangling grants. 0 disables the sweep.
	GrantSweepMinutes int

	// SeedDemoData inserts a small demo data set at startup when the
	// database is empty. Meant for dev environments only.
	SeedDemoData bool
}
