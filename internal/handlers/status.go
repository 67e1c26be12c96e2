package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/tupyy/tpserve/api/v1"
)

// GetHealth reports that the admin API is up
// (GET /health)
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, v1.Health{Status: "ok"})
}

// GetPoolStatus returns listener and pool counters
// (GET /pool)
func (h *Handler) GetPoolStatus(c *gin.Context) {
	status := h.statusSrv.Status()

	zap.S().Named("status_handler").Debugw("pool status requested",
		"accepted", status.Accepted, "pending", status.Pool.Pending)

	c.JSON(http.StatusOK, v1.NewServerStatusFromModel(status))
}
