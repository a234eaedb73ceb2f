package handler

import (
	"errors"
	"net/http"

	"upflux-ai/internal/model"
	"upflux-ai/internal/service"
	"upflux-ai/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SchedulingHandler handles rollout scheduling requests
type SchedulingHandler struct {
	schedulingService *service.SchedulingService
}

// NewSchedulingHandler creates scheduling handler
func NewSchedulingHandler(schedulingService *service.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{schedulingService: schedulingService}
}

// Scheduling computes window-aware rollout times per cohort
// @Summary Schedule cohort rollouts
// @Description Compute a feasible, conflict-minimized update time per cohort from predicted device idle windows; unschedulable cohorts are omitted
// @Tags ai
// @Accept json
// @Produce json
// @Param request body model.SchedulingRequest true "Cohorts plus idle window feed"
// @Success 200 {object} model.SchedulingResponse
// @Router /ai/scheduling [post]
func (h *SchedulingHandler) Scheduling(c *gin.Context) {
	var req model.SchedulingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed scheduling request"})
		return
	}

	resp, err := h.schedulingService.RunScheduling(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.ErrorCtx(c.Request.Context(), "scheduling failed for %d clusters: %v", len(req.Clusters), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
