package models

import (
	"time"

	"github.com/tupyy/tpserve/pkg/threadpool"
)

// ServerStatus is the state of the static file server and its pool.
type ServerStatus struct {
	Accepted uint64
	Uptime   time.Duration
	Pool     threadpool.Stats
}
