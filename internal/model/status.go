package model

// DeviceStatusEvent reports an installation lifecycle transition for one
// device.
type DeviceStatusEvent struct {
	Event string `json:"event" binding:"required"`
}

// DeviceStatusResponse is a device's current rollout state.
type DeviceStatusResponse struct {
	DeviceUUID string `json:"deviceUuid"`
	State      string `json:"state"`
}
