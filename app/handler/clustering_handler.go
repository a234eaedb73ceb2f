package handler

import (
	"errors"
	"net/http"

	"upflux-ai/internal/model"
	"upflux-ai/internal/service"
	"upflux-ai/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ClusteringHandler handles fleet clustering requests
type ClusteringHandler struct {
	clusteringService *service.ClusteringService
}

// NewClusteringHandler creates clustering handler
func NewClusteringHandler(clusteringService *service.ClusteringService) *ClusteringHandler {
	return &ClusteringHandler{clusteringService: clusteringService}
}

// Clustering groups the fleet into update cohorts and builds plot data
// @Summary Cluster fleet telemetry
// @Description Partition devices into update cohorts by resource-usage similarity and return 2-D plot data, padded with synthetic points for sparse fleets
// @Tags ai
// @Accept json
// @Produce json
// @Param request body []model.DeviceTelemetry true "Per-device telemetry records"
// @Success 200 {object} model.ClusteringResponse
// @Router /ai/clustering [post]
func (h *ClusteringHandler) Clustering(c *gin.Context) {
	var telemetry []model.DeviceTelemetry
	if err := c.ShouldBindJSON(&telemetry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload must be a list of telemetry records"})
		return
	}
	if len(telemetry) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty payload"})
		return
	}

	resp, err := h.clusteringService.RunClustering(c.Request.Context(), telemetry)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.ErrorCtx(c.Request.Context(), "clustering failed for %d devices: %v", len(telemetry), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
