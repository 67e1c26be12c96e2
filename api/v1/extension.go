package v1

import (
	"github.com/tupyy/tpserve/internal/models"
	"github.com/tupyy/tpserve/internal/util"
	"github.com/tupyy/tpserve/pkg/threadpool"
)

// NewServerStatusFromModel converts a models.ServerStatus to its API form.
func NewServerStatusFromModel(m models.ServerStatus) ServerStatus {
	return ServerStatus{
		AcceptedConnections: m.Accepted,
		UptimeSeconds:       util.Seconds(m.Uptime),
		Pool:                NewPoolStatus(m.Pool),
	}
}

func NewPoolStatus(s threadpool.Stats) PoolStatus {
	p := PoolStatus{
		Workers:   s.Workers,
		Submitted: s.Submitted,
		Executed:  s.Executed,
		Panicked:  s.Panicked,
		Pending:   s.Pending,
		PerWorker: make([]WorkerStatus, 0, len(s.PerWorker)),
	}
	for _, ws := range s.PerWorker {
		p.PerWorker = append(p.PerWorker, WorkerStatus{
			Id:           ws.ID,
			Executed:     ws.Executed,
			Panicked:     ws.Panicked,
			Steals:       ws.Steals,
			StolenJobs:   ws.StolenJobs,
			GlobalDrains: ws.GlobalDrains,
			DrainedJobs:  ws.DrainedJobs,
			IdleSleeps:   ws.IdleSleeps,
			SharePercent: util.Percent(ws.Executed, s.Executed),
		})
	}
	return p
}
