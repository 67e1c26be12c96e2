package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tupyy/tpserve/internal/models"
)

type StatusProvider interface {
	Status() models.ServerStatus
}

type Handler struct {
	statusSrv StatusProvider
}

func New(statusSrv StatusProvider) *Handler {
	return &Handler{
		statusSrv: statusSrv,
	}
}

// RegisterHandlers mounts the admin routes on router.
func RegisterHandlers(router gin.IRouter, h *Handler) {
	router.GET("/health", h.GetHealth)
	router.GET("/pool", h.GetPoolStatus)
}
