// Package handlers implements the admin HTTP API of tpserve.
//
// Handlers delegate to the services layer and only deal with HTTP concerns:
// routing, status codes and conversion of models to API types.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Model-to-API conversion (api/v1)                             │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  StatusService ──► threadpool.Pool, server.Server               │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// All endpoints are mounted under /api/v1:
//
//	┌────────┬──────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint │ Description                                 │
//	├────────┼──────────┼─────────────────────────────────────────────┤
//	│ GET    │ /health  │ Liveness of the admin API                   │
//	│ GET    │ /pool    │ Accepted connections, uptime, pool counters │
//	└────────┴──────────┴─────────────────────────────────────────────┘
//
// GET /pool returns:
//
//	{
//	    "acceptedConnections": 42,
//	    "uptimeSeconds": 12.5,
//	    "pool": {
//	        "workers": 4,
//	        "submitted": 42,
//	        "executed": 41,
//	        "panicked": 0,
//	        "pending": 1,
//	        "perWorker": [
//	            {"id": 0, "executed": 11, "steals": 2, "globalDrains": 3, ...}
//	        ]
//	    }
//	}
//
// Prometheus metrics are served by the server package at /metrics, outside
// the /api/v1 group.
package handlers
