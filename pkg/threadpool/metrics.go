package threadpool

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "threadpool"

var (
	workersDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "workers"),
		"Number of worker goroutines in the pool.",
		nil, nil,
	)
	pendingDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "jobs_pending"),
		"Jobs submitted but not yet finished.",
		nil, nil,
	)
	submittedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "jobs_submitted_total"),
		"Total number of jobs submitted to the pool.",
		nil, nil,
	)
	executedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "jobs_executed_total"),
		"Total number of jobs run by a worker, including jobs that panicked.",
		[]string{"worker"}, nil,
	)
	panickedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "jobs_panicked_total"),
		"Total number of jobs that panicked.",
		[]string{"worker"}, nil,
	)
	stealsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "steals_total"),
		"Successful steals from the neighbor deque.",
		[]string{"worker"}, nil,
	)
	drainsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "global_drains_total"),
		"Bulk moves from the global queue into a local deque.",
		[]string{"worker"}, nil,
	)
	idleDesc = prometheus.NewDesc(
		prometheus.BuildFQName(metricsNamespace, "", "idle_sleeps_total"),
		"Times a worker found no work and slept.",
		[]string{"worker"}, nil,
	)
)

// Describe implements prometheus.Collector.
func (p *Pool) Describe(ch chan<- *prometheus.Desc) {
	ch <- workersDesc
	ch <- pendingDesc
	ch <- submittedDesc
	ch <- executedDesc
	ch <- panickedDesc
	ch <- stealsDesc
	ch <- drainsDesc
	ch <- idleDesc
}

// Collect implements prometheus.Collector.
func (p *Pool) Collect(ch chan<- prometheus.Metric) {
	s := p.Stats()

	ch <- prometheus.MustNewConstMetric(workersDesc, prometheus.GaugeValue, float64(s.Workers))
	ch <- prometheus.MustNewConstMetric(pendingDesc, prometheus.GaugeValue, float64(s.Pending))
	ch <- prometheus.MustNewConstMetric(submittedDesc, prometheus.CounterValue, float64(s.Submitted))

	for _, ws := range s.PerWorker {
		id := strconv.Itoa(ws.ID)
		ch <- prometheus.MustNewConstMetric(executedDesc, prometheus.CounterValue, float64(ws.Executed), id)
		ch <- prometheus.MustNewConstMetric(panickedDesc, prometheus.CounterValue, float64(ws.Panicked), id)
		ch <- prometheus.MustNewConstMetric(stealsDesc, prometheus.CounterValue, float64(ws.Steals), id)
		ch <- prometheus.MustNewConstMetric(drainsDesc, prometheus.CounterValue, float64(ws.GlobalDrains), id)
		ch <- prometheus.MustNewConstMetric(idleDesc, prometheus.CounterValue, float64(ws.IdleSleeps), id)
	}
}
