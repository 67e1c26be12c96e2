package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "github.com/tupyy/tpserve/api/v1"
	"github.com/tupyy/tpserve/internal/config"
)

// AdminServer serves the admin API under /api/v1 and Prometheus metrics at
// /metrics.
type AdminServer struct {
	srv *http.Server
}

func NewAdminServer(cfg *config.Configuration, gatherer prometheus.Gatherer, registerHandlerFn func(router *gin.RouterGroup)) *AdminServer {
	if cfg.Admin.Mode == config.ServerModeProd {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger := zap.L().Named("http")

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		ginzap.RecoveryWithZap(logger, true),
	)

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	router := engine.Group("/api/v1")
	registerHandlerFn(router)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, v1.Error{Error: "not found"})
	})

	return &AdminServer{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Admin.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the router, mainly for tests.
func (a *AdminServer) Handler() http.Handler {
	return a.srv.Handler
}

// Start blocks until the server fails or is stopped. It returns nil on a
// clean stop.
func (a *AdminServer) Start(ctx context.Context) error {
	a.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	zap.S().Named("admin").Infow("admin server listening", "address", a.srv.Addr)

	if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *AdminServer) Stop(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}
