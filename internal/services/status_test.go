package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/tpserve/internal/services"
	"github.com/tupyy/tpserve/pkg/threadpool"
)

type fakeConnections struct {
	accepted uint64
	uptime   time.Duration
}

func (f fakeConnections) Accepted() uint64 { return f.accepted }
func (f fakeConnections) Uptime() time.Duration { return f.uptime }

var _ = Describe("StatusService", func() {
	It("should combine pool and connection counters", func() {
		pool := threadpool.New(2)
		DeferCleanup(pool.Close)

		done := make(chan struct{})
		for range 10 {
			pool.Submit(func() {})
		}
		pool.Submit(func() { close(done) })
		Eventually(done).Should(BeClosed())

		srv := services.NewStatusService(pool, fakeConnections{accepted: 11, uptime: time.Minute})

		Eventually(func() uint64 {
			return srv.Status().Pool.Executed
		}).Should(Equal(uint64(11)))

		status := srv.Status()
		Expect(status.Accepted).To(Equal(uint64(11)))
		Expect(status.Uptime).To(Equal(time.Minute))
		Expect(status.Pool.Workers).To(Equal(2))
		Expect(status.Pool.Submitted).To(Equal(uint64(11)))
		Expect(status.Pool.Pending).To(BeZero())
		Expect(status.Pool.PerWorker).To(HaveLen(2))
	})
})
