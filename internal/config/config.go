// Package config reads the demo service's process configuration from
// environment variables, the way the teacher codebase's cmd/zmux-server
// main.go reads ENV directly rather than through a framework.
package config

import "os"

// Config holds everything cmd/intervalidx-server needs at startup. It is
// never consulted by the core packages (internal/interval, internal/node,
// internal/skiplist, internal/cartesian, pkg/intervalindex), which stay
// free of environment coupling per the core's single-threaded, in-memory
// contract.
type Config struct {
	// ListenAddr is the HTTP bind address, e.g. "127.0.0.1:8080".
	ListenAddr string
	// Dev enables developer-only middleware (CORS for a local frontend).
	Dev bool
	// RedisAddr is the audit-trail sink address. Empty disables the audit
	// trail entirely; the index never depends on Redis being reachable.
	RedisAddr string
	// SeedFile, if set, is a newline-delimited list of "inf sup infClosed
	// supClosed" records loaded concurrently at startup (§10.7).
	SeedFile string
}

// Load reads Config from the environment, applying the same defaults the
// teacher's main.go hardcodes inline.
func Load() Config {
	return Config{
		ListenAddr: getEnv("LISTEN_ADDR", "127.0.0.1:8080"),
		Dev:        os.Getenv("ENV") == "dev",
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		SeedFile:   os.Getenv("SEED_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
