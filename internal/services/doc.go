// Package services implements the layer between the admin HTTP handlers and
// the running server.
//
// # Service Dependency Graph
//
//	Handlers (admin API)
//	    │
//	    ▼
//	StatusService
//	    ├── PoolStats ──────► threadpool.Pool (Stats)
//	    └── ConnectionStats ► server.Server (Accepted, Uptime)
//
// StatusService holds no state of its own. Every call reads the current
// counters, so two calls may observe different values while the server is
// busy.
package services
