package threadpool

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of deferred work. The pool runs each submitted Job once.
type Job func()

// DefaultIdleBackoff is how long a worker sleeps when it finds no work.
const DefaultIdleBackoff = 10 * time.Millisecond

var (
	// ErrInvalidWorkerCount is raised by New when asked for fewer than one worker.
	ErrInvalidWorkerCount = errors.New("threadpool: a pool needs at least one worker")
	// ErrPoolClosed is raised by Submit once Close has started.
	ErrPoolClosed = errors.New("threadpool: submit called after the pool was closed")
	// ErrNilJob is raised by Submit when given a nil Job.
	ErrNilJob = errors.New("threadpool: nil job submitted")
)

type options struct {
	idleBackoff time.Duration
	log         *zap.SugaredLogger
}

// Option configures a Pool created by New.
type Option func(*options)

// WithIdleBackoff sets how long a worker sleeps after finding no work anywhere.
func WithIdleBackoff(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleBackoff = d
		}
	}
}

// WithLogger sets the logger used by the pool and its workers.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func defaultOptions() options {
	return options{
		idleBackoff: DefaultIdleBackoff,
		log:         zap.S().Named("threadpool"),
	}
}
