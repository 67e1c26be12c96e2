// Package config defines the configuration structure for tpserve.
//
// Configuration is organized into logical sections (Server, Admin, Pool) and
// carries its defaults as struct tags applied by github.com/creasty/defaults.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - Static file listener
//	├── Admin          - Admin API (health, pool stats, metrics)
//	├── Pool           - Work-stealing pool
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────┬──────────────────┬──────────────────────────────────────┐
//	│ Field        │ Default          │ Description                          │
//	├──────────────┼──────────────────┼──────────────────────────────────────┤
//	│ Address      │ "127.0.0.1:1560" │ TCP listen address                   │
//	│ WebRoot      │ "./web"          │ Directory files are served from      │
//	│ IndexPage    │ "hello.html"     │ File served for "/"                  │
//	│ NotFoundPage │ "404.html"       │ Body of 404 responses                │
//	│ ReadTimeout  │ 10s              │ Deadline for reading a request       │
//	└──────────────┴──────────────────┴──────────────────────────────────────┘
//
// # Admin Configuration
//
//	┌──────────┬─────────┬────────────────────────────────────────┐
//	│ Field    │ Default │ Description                            │
//	├──────────┼─────────┼────────────────────────────────────────┤
//	│ Enabled  │ false   │ Start the admin API                    │
//	│ Mode     │ "dev"   │ Gin mode: "prod" or "dev"              │
//	│ HTTPPort │ 8000    │ Admin API listen port                  │
//	└──────────┴─────────┴────────────────────────────────────────┘
//
// # Pool Configuration
//
//	┌─────────────┬─────────┬────────────────────────────────────────┐
//	│ Field       │ Default │ Description                            │
//	├─────────────┼─────────┼────────────────────────────────────────┤
//	│ Workers     │ 4       │ Number of pool workers (>= 1)          │
//	│ IdleBackoff │ 10ms    │ Worker sleep when no work is found     │
//	└─────────────┴─────────┴────────────────────────────────────────┘
//
// # Sources
//
// The command line merges, from lowest to highest precedence: defaults, a
// YAML file (--config), a .env file (--env-file), TPSERVE_* environment
// variables and flags. Keys use the mapstructure names, e.g. pool.workers
// or TPSERVE_POOL_WORKERS.
//
// # Debug Logging
//
// DebugMap returns a flat map suitable for structured logging:
//
//	log.Infow("configuration loaded", "config", cfg.DebugMap())
package config
