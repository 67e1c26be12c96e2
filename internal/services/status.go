package services

import (
	"time"

	"github.com/tupyy/tpserve/internal/models"
	"github.com/tupyy/tpserve/pkg/threadpool"
)

type PoolStats interface {
	Stats() threadpool.Stats
}

type ConnectionStats interface {
	Accepted() uint64
	Uptime() time.Duration
}

type StatusService struct {
	pool   PoolStats
	server ConnectionStats
}

func NewStatusService(pool PoolStats, server ConnectionStats) *StatusService {
	return &StatusService{pool: pool, server: server}
}

func (s *StatusService) Status() models.ServerStatus {
	return models.ServerStatus{
		Accepted: s.server.Accepted(),
		Uptime:   s.server.Uptime(),
		Pool:     s.pool.Stats(),
	}
}
