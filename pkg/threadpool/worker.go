package threadpool

import (
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

type worker struct {
	id       int
	local    *deque[Job]
	neighbor *deque[Job]
	global   *deque[Job]
	quit     <-chan struct{}

	idleBackoff time.Duration
	counters    *workerCounters
	log         *zap.SugaredLogger
}

// run loops until shutdown has been signaled and one full pass over the
// local deque, the neighbor deque and the global queue found them all empty.
//
// Lock order is always local first, then neighbor or global. The neighbor is
// only ever try-locked so two idle workers cannot wait on each other.
func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		// Read before looking at any queue: once quit is closed the global
		// queue receives nothing new, so empty queues seen after this point
		// stay empty.
		closing := w.closing()

		w.local.mu.Lock()
		if job, ok := w.local.PopFront(); ok {
			w.local.mu.Unlock()
			w.execute(job)
			continue
		}

		stolen, neighborEmpty := w.stealFromNeighbor()
		if stolen > 0 {
			w.local.mu.Unlock()
			continue
		}

		drained := w.drainGlobal()
		w.local.mu.Unlock()
		if drained > 0 {
			continue
		}

		if closing {
			if neighborEmpty {
				w.log.Debugw("worker exiting")
				return
			}
			// The neighbor was busy under its lock; look again right away.
			runtime.Gosched()
			continue
		}
		w.idle()
	}
}

// stealFromNeighbor moves the back half of the neighbor deque into the local
// deque. The caller holds the local lock. neighborEmpty reports whether the
// neighbor was actually observed empty; a failed try-lock reports false.
func (w *worker) stealFromNeighbor() (stolen int, neighborEmpty bool) {
	// With a single worker the neighbor is the local deque, which is held
	// and already known to be empty.
	if w.neighbor == w.local {
		return 0, true
	}

	if !w.neighbor.mu.TryLock() {
		return 0, false
	}
	jobs := w.neighbor.SplitBack()
	w.neighbor.mu.Unlock()

	if len(jobs) == 0 {
		return 0, true
	}
	w.local.Append(jobs)
	w.counters.steals.Add(1)
	w.counters.stolenJobs.Add(uint64(len(jobs)))
	return len(jobs), false
}

// drainGlobal moves the back half of the global queue into the local deque.
// The caller holds the local lock.
func (w *worker) drainGlobal() int {
	w.global.mu.Lock()
	jobs := w.global.SplitBack()
	w.global.mu.Unlock()

	if len(jobs) == 0 {
		return 0
	}
	w.local.Append(jobs)
	w.counters.globalDrains.Add(1)
	w.counters.drainedJobs.Add(uint64(len(jobs)))
	return len(jobs)
}

// execute runs job with no pool lock held. A panicking job is logged and
// counted as executed; the worker keeps going.
func (w *worker) execute(job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			w.counters.panicked.Add(1)
			w.log.Errorw("job panicked", "panic", rec, "stack", string(debug.Stack()))
		}
		w.counters.executed.Add(1)
	}()

	job()
}

func (w *worker) closing() bool {
	select {
	case <-w.quit:
		return true
	default:
		return false
	}
}

// idle sleeps for the backoff interval or until shutdown is signaled.
func (w *worker) idle() {
	w.counters.idleSleeps.Add(1)

	t := time.NewTimer(w.idleBackoff)
	defer t.Stop()

	select {
	case <-t.C:
	case <-w.quit:
	}
}
