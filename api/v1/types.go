package v1

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
}

// Error is returned by the admin API on failure.
type Error struct {
	Error string `json:"error"`
}

type WorkerStatus struct {
	Id           int     `json:"id"`
	Executed     uint64  `json:"executed"`
	Panicked     uint64  `json:"panicked"`
	Steals       uint64  `json:"steals"`
	StolenJobs   uint64  `json:"stolenJobs"`
	GlobalDrains uint64  `json:"globalDrains"`
	DrainedJobs  uint64  `json:"drainedJobs"`
	IdleSleeps   uint64  `json:"idleSleeps"`
	// SharePercent is this worker's share of all executed jobs.
	SharePercent float64 `json:"sharePercent"`
}

type PoolStatus struct {
	Workers   int            `json:"workers"`
	Submitted uint64         `json:"submitted"`
	Executed  uint64         `json:"executed"`
	Panicked  uint64         `json:"panicked"`
	Pending   uint64         `json:"pending"`
	PerWorker []WorkerStatus `json:"perWorker"`
}

// ServerStatus is the body of GET /pool.
type ServerStatus struct {
	AcceptedConnections uint64     `json:"acceptedConnections"`
	UptimeSeconds       float64    `json:"uptimeSeconds"`
	Pool                PoolStatus `json:"pool"`
}
