package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/community/backend/internal/infrastructure/scheduler"
	"github.com/community/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles operational endpoints for administrators
type SystemHandler struct {
	BaseHandler
	sweepRunner *scheduler.SweepRunner
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(sweepRunner *scheduler.SweepRunner) *SystemHandler {
	return &SystemHandler{sweepRunner: sweepRunner}
}

// RegisterRoutes registers system routes on the given group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sweeps/status", h.SweepStatus)
	rg.POST("/sweeps/trigger", h.TriggerSweep)
}

// SweepStatus reports whether the background sweep loop is running
func (h *SystemHandler) SweepStatus(c *gin.Context) {
	h.Success(c, gin.H{"running": h.sweepRunner.IsRunning()})
}

// TriggerSweep runs all registered expiry sweeps immediately. The sweeps
// are idempotent, so an overlapping scheduled run is harmless.
func (h *SystemHandler) TriggerSweep(c *gin.Context) {
	// The sweep outlives the request, so detach it from request cancellation
	err := h.sweepRunner.TriggerSweep(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		if errors.Is(err, scheduler.ErrRunnerNotRunning) {
			h.Error(c, http.StatusConflict, dto.ErrCodeConflict, "Sweep runner is not running")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"triggered": true})
}
