package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	sheets  Pinger
	storage Pinger
}

func NewHealthController(sheets, storage Pinger) *HealthController {
	return &HealthController{sheets: sheets, storage: storage}
}

// Check reports the connection status of the spreadsheet and object store.
// GET /health
func (ctrl *HealthController) Check(c *gin.Context) {
	sheetsStatus := "connected"
	storageStatus := "connected"
	healthy := true

	ctx := c.Request.Context()
	if err := ctrl.sheets.Ping(ctx); err != nil {
		sheetsStatus = "unavailable"
		healthy = false
	}
	if err := ctrl.storage.Ping(ctx); err != nil {
		storageStatus = "unavailable"
		healthy = false
	}

	status := http.StatusOK
	state := "healthy"
	message := "Gramedia Display API is running"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
		message = "Gramedia Display API is degraded, one or more backing services are unreachable"
	}

	c.JSON(status, gin.H{
		"status":  state,
		"sheets":  sheetsStatus,
		"storage": storageStatus,
		"message": message,
	})
}
