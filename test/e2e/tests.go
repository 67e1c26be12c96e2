package main

import (
	"net/http"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/tpserve/test/e2e/service"
)

var _ = Describe("Static server", func() {
	var static *service.StaticSvc

	BeforeEach(func() {
		static = service.NewStaticService(cfg.ServerAddress, cfg.Timeout)
	})

	It("serves the index page for /", func() {
		resp, body, err := static.Do(http.MethodGet, "/")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.ContentLength).To(BeNumerically("==", len(body)))
		Expect(resp.Header.Get("Content-Type")).To(HavePrefix("text/html"))
	})

	It("answers HEAD with headers only", func() {
		getResp, getBody, err := static.Do(http.MethodGet, "/")
		Expect(err).NotTo(HaveOccurred())

		resp, body, err := static.Do(http.MethodHead, "/")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body).To(BeEmpty())
		Expect(resp.Header.Get("Content-Length")).To(Equal(getResp.Header.Get("Content-Length")))
		Expect(getBody).NotTo(BeEmpty())
	})

	It("serves the 404 page for unknown files", func() {
		resp, _, err := static.Do(http.MethodGet, "/does-not-exist.html")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		Expect(resp.Status).To(Equal("404 NOT FOUND"))
	})

	It("does not escape the web root", func() {
		resp, _, err := static.Do(http.MethodGet, "/../../etc/passwd")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
	})

	DescribeTable("closes the connection without a response",
		func(raw string) {
			data, err := static.Send(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(BeEmpty())
		},
		Entry("POST", "POST / HTTP/1.1\r\n\r\n"),
		Entry("unknown method", "BREW / HTTP/1.1\r\n\r\n"),
		Entry("HTTP/1.0", "GET / HTTP/1.0\r\n\r\n"),
		Entry("garbage", "hello\r\n\r\n"),
	)

	It("serves a burst of concurrent clients", func() {
		var wg sync.WaitGroup
		statuses := make(chan int, cfg.Clients)

		for range cfg.Clients {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				resp, _, err := static.Do(http.MethodGet, "/")
				Expect(err).NotTo(HaveOccurred())
				statuses <- resp.StatusCode
			}()
		}
		wg.Wait()
		close(statuses)

		Expect(statuses).To(HaveLen(cfg.Clients))
		for status := range statuses {
			Expect(status).To(Equal(http.StatusOK))
		}
	})
})

var _ = Describe("Admin API", func() {
	var admin *service.AdminSvc

	BeforeEach(func() {
		if cfg.AdminURL == "" {
			Skip("admin url not set")
		}
		admin = service.NewAdminService(cfg.AdminURL)
	})

	It("reports health", func() {
		h, err := admin.Health()
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Status).To(Equal("ok"))
	})

	It("counts served connections", func() {
		before, err := admin.PoolStatus()
		Expect(err).NotTo(HaveOccurred())

		_, _, err = service.NewStaticService(cfg.ServerAddress, cfg.Timeout).Do(http.MethodGet, "/")
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() uint64 {
			s, err := admin.PoolStatus()
			Expect(err).NotTo(HaveOccurred())
			return s.Pool.Executed
		}).Should(BeNumerically(">", before.Pool.Executed))

		after, err := admin.PoolStatus()
		Expect(err).NotTo(HaveOccurred())
		Expect(after.AcceptedConnections).To(BeNumerically(">", before.AcceptedConnections))
		Expect(after.Pool.Workers).To(BeNumerically(">=", 1))
	})
})
