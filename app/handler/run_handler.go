package handler

import (
	"net/http"

	redisstore "upflux-ai/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// RunHandler serves stored analysis runs
type RunHandler struct {
	store *redisstore.Repository
}

// NewRunHandler creates run handler
func NewRunHandler(store *redisstore.Repository) *RunHandler {
	return &RunHandler{store: store}
}

// GetRun returns a previously computed run by id
// @Summary Get stored run
// @Description Fetch the stored response of an earlier clustering or scheduling run
// @Tags ai
// @Produce json
// @Param run_id path string true "Run ID"
// @Success 200 {object} map[string]interface{}
// @Router /ai/runs/{run_id} [get]
func (h *RunHandler) GetRun(c *gin.Context) {
	runID := c.Param("run_id")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "run_id required"})
		return
	}

	payload, ok := h.store.GetRun(c.Request.Context(), runID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
