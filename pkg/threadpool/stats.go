package threadpool

import "sync/atomic"

// WorkerStats is a point-in-time copy of one worker's counters.
type WorkerStats struct {
	ID           int
	Executed     uint64
	Panicked     uint64
	Steals       uint64
	StolenJobs   uint64
	GlobalDrains uint64
	DrainedJobs  uint64
	IdleSleeps   uint64
}

// Stats is a point-in-time copy of the pool counters.
type Stats struct {
	Workers   int
	Submitted uint64
	Executed  uint64
	Panicked  uint64
	Pending   uint64
	PerWorker []WorkerStats
}

// workerCounters are written only by the owning worker and read by Stats.
type workerCounters struct {
	executed     atomic.Uint64
	panicked     atomic.Uint64
	steals       atomic.Uint64
	stolenJobs   atomic.Uint64
	globalDrains atomic.Uint64
	drainedJobs  atomic.Uint64
	idleSleeps   atomic.Uint64
}

func (c *workerCounters) snapshot(id int) WorkerStats {
	return WorkerStats{
		ID:           id,
		Executed:     c.executed.Load(),
		Panicked:     c.panicked.Load(),
		Steals:       c.steals.Load(),
		StolenJobs:   c.stolenJobs.Load(),
		GlobalDrains: c.globalDrains.Load(),
		DrainedJobs:  c.drainedJobs.Load(),
		IdleSleeps:   c.idleSleeps.Load(),
	}
}

// Stats returns the current counters. Values are read without a global
// lock, so totals may lag a job that is finishing concurrently.
func (p *Pool) Stats() Stats {
	s := Stats{
		Workers:   len(p.counters),
		Submitted: p.submitted.Load(),
		PerWorker: make([]WorkerStats, 0, len(p.counters)),
	}
	for i := range p.counters {
		ws := p.counters[i].snapshot(i)
		s.Executed += ws.Executed
		s.Panicked += ws.Panicked
		s.PerWorker = append(s.PerWorker, ws)
	}
	if s.Submitted > s.Executed {
		s.Pending = s.Submitted - s.Executed
	}
	return s
}
