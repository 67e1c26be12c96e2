// Package threadpool implements a fixed-size work-stealing pool for
// fire-and-forget jobs.
//
// A Pool is a handle to a coordinator goroutine which in turn owns N worker
// goroutines. Jobs are submitted through the handle, forwarded by the
// coordinator onto a shared global queue and migrated in bulk into the
// workers' local deques.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              Pool (handle)                          │
//	│                                                                     │
//	│   Submit(job) ──► submissions chan ──► coordinate()                 │
//	│                                            │                        │
//	│                                            ▼                        │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │                  Global Queue (mutex)                   │        │
//	│  │  [job1] [job2] [job3] ...                               │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│         │ back half            │ back half          │ back half     │
//	│         ▼                      ▼                    ▼               │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │  Worker 0    │      │  Worker 1    │      │  Worker N-1  │       │
//	│  │  local deque │◄─────│  local deque │◄─ .. │  local deque │       │
//	│  └──────────────┘ steal└──────────────┘      └──────────────┘       │
//	│         │                                           ▲               │
//	│         └───────────────────── steal ───────────────┘               │
//	└─────────────────────────────────────────────────────────────────────┘
//
// Worker i steals from worker (i+1) mod N. The relation is a single directed
// cycle, so every local deque is touched by exactly two goroutines: its owner
// and one stealer.
//
// # Worker Loop
//
// Each pass of the loop runs these steps in order:
//
//  1. Lock the local deque. If it has a job, pop the front, unlock and run it.
//  2. With the local lock held, try-lock the neighbor. If it holds jobs, move
//     its back half (from index len/2) into the local deque and start over.
//  3. With the local lock still held, lock the global queue. If it holds
//     jobs, move its back half into the local deque and start over.
//  4. Release everything and sleep for the idle backoff (10ms by default).
//
// The neighbor is never locked blocking. Two idle neighbors each holding
// their own local lock would otherwise wait on each other forever.
//
// Jobs never run while a pool lock is held.
//
// # Shutdown
//
// Close performs an ordered shutdown:
//
//  1. Marks the handle closed and closes the submission channel.
//  2. The coordinator finishes moving every received job onto the global
//     queue, then closes the quit channel.
//  3. A worker exits once it has seen quit closed at the start of a pass and
//     the local deque, the neighbor deque and the global queue empty in that
//     same pass.
//  4. The coordinator waits for all workers, then Close returns.
//
// When Close returns every accepted job has run. Close is idempotent.
//
// # Misuse
//
// Misuse is a programming error and panics:
//
//   - New with fewer than one worker panics with ErrInvalidWorkerCount.
//   - Submit after Close has started panics with ErrPoolClosed.
//   - Submit with a nil job panics with ErrNilJob.
//
// # Panic Recovery
//
// A job that panics is recovered by its worker, logged with its stack and
// counted both as executed and as panicked. The worker keeps running.
//
// # Observability
//
// Stats returns per-worker counters (jobs run, steals, global drains, idle
// sleeps). Pool also implements prometheus.Collector:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(pool)
//
// # Usage Example
//
//	pool := threadpool.New(4)
//	defer pool.Close()
//
//	for _, conn := range conns {
//	    pool.Submit(func() {
//	        handle(conn)
//	    })
//	}
package threadpool
