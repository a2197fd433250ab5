// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import "time"

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDriver: "sqlite", "postgres" or "memory".
//   - DatabaseDSN: driver specific DSN (file path for sqlite, pgx DSN for postgres).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     per-process secret is generated at startup.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - CORSAllowedOrigins: origins allowed to call the API from a browser.
//   - GinMode: gin mode (debug, release, test).
//   - SeedDemoUsers: insert the demo/admin accounts on startup.
//   - HealthCheckInterval: how often the store is probed for gRPC health.
type Config struct {
	EndpointAddrHTTP      string        `env:"HTTP_ADDRESS"`
	EndpointAddrGRPC      string        `env:"GRPC_ADDRESS"`
	DatabaseDriver        string        `env:"DATABASE_DRIVER"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"JWT_SECRET"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	CORSAllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	GinMode               string        `env:"GIN_MODE"`
	SeedDemoUsers         bool          `env:"SEED_DEMO_USERS"`
	HealthCheckInterval   time.Duration `env:"HEALTH_CHECK_INTERVAL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is left empty on purpose; set JWT_SECRET in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:users.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.CORSAllowedOrigins = []string{"*"}
	c.GinMode = "release"
	c.SeedDemoUsers = true
	c.HealthCheckInterval = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, then from the environment (.env included) and
// finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
