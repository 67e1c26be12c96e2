/*
Package main provides an end-to-end test runner for a running tpserve.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, Ginkgo runner
	├── tests.go         Ginkgo specs (static server, admin API)
	├── doc.go           This file
	└── service/
	    └── service.go   StaticSvc (raw TCP client) and AdminSvc (admin API client)

# Running

The runner does not start tpserve itself. Start the server first, with a web
root holding an index page and a 404 page:

	tpserve --web-root ./web --admin --admin-port 8000 &
	go run ./test/e2e -server-address 127.0.0.1:1560 -admin-url http://127.0.0.1:8000

When -admin-url is empty the admin specs are skipped.

# Flow

	┌────────────┐   raw TCP, one request   ┌──────────────────┐
	│ StaticSvc  │─────────────────────────▶│ tpserve listener │
	└────────────┘                          └────────┬─────────┘
	                                                 │ Job per conn
	┌────────────┐   GET /api/v1/pool       ┌────────▼─────────┐
	│  AdminSvc  │─────────────────────────▶│ threadpool.Pool  │
	└────────────┘                          └──────────────────┘

The burst test opens -clients connections at once and expects every one of
them to be answered, which exercises work stealing across the pool.
*/
package main
