package handler

import (
	"errors"
	"net/http"

	"upflux-ai/internal/model"
	"upflux-ai/internal/service"
	"upflux-ai/pkg/logger"
	"upflux-ai/pkg/status"

	"github.com/gin-gonic/gin"
)

// DeviceStatusHandler handles device rollout status reporting and queries
type DeviceStatusHandler struct {
	statusService *service.DeviceStatusService
}

// NewDeviceStatusHandler creates device status handler
func NewDeviceStatusHandler(statusService *service.DeviceStatusService) *DeviceStatusHandler {
	return &DeviceStatusHandler{statusService: statusService}
}

// ReportEvent applies a status event to a device's state machine
// @Summary Report device status event
// @Description Apply an installation lifecycle event (INSTALL_STARTED, INSTALL_FAILED, INSTALL_SUCCEEDED) to a device
// @Tags devices
// @Accept json
// @Produce json
// @Param device_uuid path string true "Device UUID"
// @Param request body model.DeviceStatusEvent true "Status event"
// @Success 200 {object} model.DeviceStatusResponse
// @Router /v1/devices/{device_uuid}/status [post]
func (h *DeviceStatusHandler) ReportEvent(c *gin.Context) {
	deviceUUID := c.Param("device_uuid")
	if deviceUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_uuid required"})
		return
	}

	var req model.DeviceStatusEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event required"})
		return
	}

	state, err := h.statusService.ApplyEvent(c.Request.Context(), deviceUUID, req.Event)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, status.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.ErrorCtx(c.Request.Context(), "failed to apply status event for %s: %v", deviceUUID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, model.DeviceStatusResponse{DeviceUUID: deviceUUID, State: string(state)})
}

// GetStatus returns a device's current rollout state
// @Summary Get device status
// @Description Get a device's current rollout state; devices that never reported are IDLE
// @Tags devices
// @Produce json
// @Param device_uuid path string true "Device UUID"
// @Success 200 {object} model.DeviceStatusResponse
// @Router /v1/devices/{device_uuid}/status [get]
func (h *DeviceStatusHandler) GetStatus(c *gin.Context) {
	deviceUUID := c.Param("device_uuid")
	if deviceUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_uuid required"})
		return
	}

	state := h.statusService.GetState(c.Request.Context(), deviceUUID)
	c.JSON(http.StatusOK, model.DeviceStatusResponse{DeviceUUID: deviceUUID, State: string(state)})
}
