package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/tupyy/tpserve/internal/config"
	"github.com/tupyy/tpserve/pkg/threadpool"
)

type Submitter interface {
	Submit(job threadpool.Job)
}

type ConnHandler interface {
	ServeConn(conn net.Conn)
}

// Server accepts TCP connections and hands each one to the pool as a job.
// The job owns the connection and is responsible for closing it.
type Server struct {
	listener net.Listener
	pool     Submitter
	handler  ConnHandler
	accepted atomic.Uint64
	started  time.Time
}

func NewServer(cfg *config.Configuration, pool Submitter, handler ConnHandler) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address, err)
	}
	return &Server{
		listener: ln,
		pool:     pool,
		handler:  handler,
		started:  time.Now(),
	}, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Accepted returns the number of connections accepted so far.
func (s *Server) Accepted() uint64 {
	return s.accepted.Load()
}

func (s *Server) Uptime() time.Duration {
	return time.Since(s.started)
}

// Start runs the accept loop until Stop is called or ctx is done. It returns
// nil on a clean stop. Failed accepts are retried with exponential backoff.
func (s *Server) Start(ctx context.Context) error {
	log := zap.S().Named("server")

	stop := context.AfterFunc(ctx, func() {
		_ = s.listener.Close()
	})
	defer stop()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = time.Second

	log.Infow("accepting connections", "address", s.Addr().String())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				log.Info("listener closed")
				return nil
			}

			delay := b.NextBackOff()
			log.Warnw("accept failed", "error", err, "retry_in", delay)
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return nil
			}
		}
		b.Reset()

		s.accepted.Add(1)
		s.pool.Submit(func() {
			s.handler.ServeConn(conn)
		})
	}
}

// Stop closes the listener. Connections already handed to the pool are not
// affected.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
