package server_test

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/tpserve/internal/config"
	"github.com/tupyy/tpserve/internal/responder"
	"github.com/tupyy/tpserve/internal/server"
	"github.com/tupyy/tpserve/pkg/threadpool"
	"github.com/tupyy/tpserve/test"
)

// syncSubmitter runs jobs inline and records how many it saw.
type syncSubmitter struct {
	mu   sync.Mutex
	jobs int
}

func (s *syncSubmitter) Submit(job threadpool.Job) {
	s.mu.Lock()
	s.jobs++
	s.mu.Unlock()
	job()
}

func (s *syncSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs
}

var _ = Describe("Server", func() {
	var (
		cfg    *config.Configuration
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		var err error
		cfg, err = config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		cfg.Server.Address = "127.0.0.1:0"

		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)
	})

	start := func(srv *server.Server) chan error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(ctx)
		}()
		return errCh
	}

	dial := func(srv *server.Server, request string) string {
		conn, err := net.Dial("tcp", srv.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		if request != "" {
			_, err = conn.Write([]byte(request))
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
		data, err := io.ReadAll(conn)
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	It("should fail to listen on an invalid address", func() {
		cfg.Server.Address = "127.0.0.1:notaport"

		_, err := server.NewServer(cfg, &syncSubmitter{}, test.NewMockConnHandler("pong"))
		Expect(err).To(HaveOccurred())
	})

	It("should submit one job per connection", func() {
		sub := &syncSubmitter{}
		handler := test.NewMockConnHandler("pong")
		srv, err := server.NewServer(cfg, sub, handler)
		Expect(err).NotTo(HaveOccurred())
		errCh := start(srv)

		for range 5 {
			Expect(dial(srv, "")).To(Equal("pong"))
		}

		Eventually(sub.count).Should(Equal(5))
		Expect(handler.Served()).To(Equal(uint64(5)))
		Expect(srv.Accepted()).To(Equal(uint64(5)))

		Expect(srv.Stop(ctx)).To(Succeed())
		Eventually(errCh).Should(Receive(BeNil()))
	})

	It("should stop when the context is cancelled", func() {
		srv, err := server.NewServer(cfg, &syncSubmitter{}, test.NewMockConnHandler("pong"))
		Expect(err).NotTo(HaveOccurred())
		errCh := start(srv)

		cancel()

		Eventually(errCh).Should(Receive(BeNil()))
	})

	It("should tolerate a double stop", func() {
		srv, err := server.NewServer(cfg, &syncSubmitter{}, test.NewMockConnHandler("pong"))
		Expect(err).NotTo(HaveOccurred())

		Expect(srv.Stop(ctx)).To(Succeed())
		Expect(srv.Stop(ctx)).To(Succeed())
	})

	It("should report uptime", func() {
		srv, err := server.NewServer(cfg, &syncSubmitter{}, test.NewMockConnHandler("pong"))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = srv.Stop(context.Background()) })

		Eventually(srv.Uptime).Should(BeNumerically(">", 0))
	})

	Context("with a pool and the static responder", func() {
		var (
			pool *threadpool.Pool
			srv  *server.Server
		)

		BeforeEach(func() {
			root := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(root, "hello.html"), []byte("<html>hi</html>"), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(root, "404.html"), []byte("<html>missing</html>"), 0o644)).To(Succeed())
			cfg.Server.WebRoot = root

			pool = threadpool.New(3)

			var err error
			srv, err = server.NewServer(cfg, pool, responder.New(cfg.Server))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should serve concurrent clients and drain on close", func() {
			errCh := start(srv)

			var wg sync.WaitGroup
			responses := make(chan string, 20)
			for i := range 20 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					target := "/"
					if i%2 == 1 {
						target = "/nope.html"
					}
					responses <- dial(srv, "GET "+target+" HTTP/1.1\r\n\r\n")
				}()
			}
			wg.Wait()
			close(responses)

			ok, missing := 0, 0
			for resp := range responses {
				switch {
				case strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n"):
					Expect(resp).To(HaveSuffix("<html>hi</html>"))
					ok++
				case strings.HasPrefix(resp, "HTTP/1.1 404 NOT FOUND\r\n"):
					Expect(resp).To(HaveSuffix("<html>missing</html>"))
					missing++
				default:
					Fail("unexpected response: " + resp)
				}
			}
			Expect(ok).To(Equal(10))
			Expect(missing).To(Equal(10))

			Expect(srv.Stop(ctx)).To(Succeed())
			Eventually(errCh).Should(Receive(BeNil()))
			pool.Close()

			stats := pool.Stats()
			Expect(srv.Accepted()).To(Equal(uint64(20)))
			Expect(stats.Submitted).To(Equal(uint64(20)))
			Expect(stats.Executed).To(Equal(uint64(20)))
		})
	})
})
