// Package server provides the two network front-ends of tpserve: the static
// file listener and the optional admin HTTP server.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                       Static Server (TCP)                     │
//	├───────────────────────────────────────────────────────────────┤
//	│                                                               │
//	│   Accept loop ──► one Job per connection ──► threadpool.Pool  │
//	│        │                                          │           │
//	│        │ accept error: exponential backoff        ▼           │
//	│        │ listener closed: return nil       ConnHandler        │
//	│        ▼                                  (ServeConn + Close) │
//	│   Accepted counter                                            │
//	│                                                               │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Admin Server (Gin)                      │
//	├───────────────────────────────────────────────────────────────┤
//	│  Middleware: ginzap request logging, ginzap recovery          │
//	│  /metrics      Prometheus gatherer                            │
//	│  /api/v1/*     handlers registered via callback               │
//	│  anything else 404 JSON error                                 │
//	└───────────────────────────────────────────────────────────────┘
//
// # Static Server
//
// NewServer binds the listener immediately, so Addr is valid before Start is
// called. Binding to port 0 picks a free port, which the tests rely on.
//
//	srv, err := server.NewServer(cfg, pool, responder.New(cfg.Server))
//	go srv.Start(ctx)
//	...
//	srv.Stop(ctx)
//	pool.Close()
//
// Start never blocks on job execution: Submit on the pool returns as soon as
// the job is queued. The server does not close connections itself; the
// ConnHandler owns each connection once it has been submitted.
//
// Stopping the listener does not drain the pool. Callers close the pool after
// Stop to wait for in-flight connections.
//
// # Admin Server
//
// The admin server is a plain Gin engine. Gin runs in release mode when
// Admin.Mode is "prod" and in debug mode otherwise.
//
//	admin := server.NewAdminServer(cfg, registry, func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, h)
//	})
//	go admin.Start(ctx)
//	...
//	admin.Stop(ctx)
//
// Stop performs a graceful shutdown and waits for in-flight requests.
package server
