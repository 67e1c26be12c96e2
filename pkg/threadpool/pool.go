package threadpool

import (
	"sync"
	"sync/atomic"
)

// submissionBuffer lets callers hand off a burst without waiting on the
// coordinator. The coordinator only appends to the global queue, so a full
// buffer never waits on job execution.
const submissionBuffer = 256

// Pool is the handle to a work-stealing pool. It owns the sending side of the
// submission channel and waits on the coordinator when closed.
type Pool struct {
	mu          sync.RWMutex
	closed      bool
	submissions chan Job
	done        chan struct{}
	once        sync.Once

	submitted atomic.Uint64
	counters  []workerCounters
	opts      options
}

// New starts a pool with n workers. It panics with ErrInvalidWorkerCount when
// n < 1. The call returns as soon as the coordinator is running; the
// coordinator starts the workers.
func New(n int, opts ...Option) *Pool {
	if n < 1 {
		panic(ErrInvalidWorkerCount)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pool{
		submissions: make(chan Job, submissionBuffer),
		done:        make(chan struct{}),
		counters:    make([]workerCounters, n),
		opts:        o,
	}

	go p.coordinate(n, p.submissions)

	o.log.Debugw("pool started", "workers", n, "idle_backoff", o.idleBackoff)
	return p
}

// Submit queues job for execution. It panics with ErrPoolClosed if Close has
// started and with ErrNilJob if job is nil. When the submission buffer is
// full, Submit blocks briefly until the coordinator moves queued jobs to the
// global queue; it never waits for a job to run.
func (p *Pool) Submit(job Job) {
	if job == nil {
		panic(ErrNilJob)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		panic(ErrPoolClosed)
	}

	p.submitted.Add(1)
	p.submissions <- job
}

// Close stops accepting jobs and blocks until every accepted job has run and
// all workers have exited. Close is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.submissions)
		p.mu.Unlock()

		<-p.done
		p.opts.log.Debugw("pool stopped", "executed", p.Stats().Executed)
	})
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return len(p.counters)
}

// coordinate owns the worker set. It moves submitted jobs onto the global
// queue until the submission channel is closed, then signals the workers and
// waits for them.
func (p *Pool) coordinate(n int, submissions <-chan Job) {
	defer close(p.done)

	global := newDeque[Job]()
	locals := make([]*deque[Job], n)
	for i := range n {
		locals[i] = newDeque[Job]()
	}

	quit := make(chan struct{})
	var wg sync.WaitGroup
	for i := range n {
		w := &worker{
			id:          i,
			local:       locals[i],
			neighbor:    locals[(i+1)%n],
			global:      global,
			quit:        quit,
			idleBackoff: p.opts.idleBackoff,
			counters:    &p.counters[i],
			log:         p.opts.log.With("worker", i),
		}
		wg.Add(1)
		go w.run(&wg)
	}

	for job := range submissions {
		global.mu.Lock()
		global.PushBack(job)
		global.mu.Unlock()
	}

	close(quit)
	wg.Wait()
}
