package service

import (
	"context"
	"fmt"

	"upflux-ai/pkg/status"
	redisstore "upflux-ai/pkg/store/redis"
)

// DeviceStatusService applies rollout status events to per-device state
// machines and answers state queries.
type DeviceStatusService struct {
	store *redisstore.Repository
}

// NewDeviceStatusService creates a device status service.
func NewDeviceStatusService(store *redisstore.Repository) *DeviceStatusService {
	return &DeviceStatusService{store: store}
}

// ApplyEvent advances a device's state machine. Unknown event kinds wrap
// ErrInvalidInput; legal-event/wrong-state combinations surface
// status.ErrInvalidTransition so the handler can report a conflict.
func (s *DeviceStatusService) ApplyEvent(ctx context.Context, deviceUUID, event string) (status.State, error) {
	ev, err := status.ParseEvent(event)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current := s.GetState(ctx, deviceUUID)
	next, err := status.Next(current, ev)
	if err != nil {
		return "", err
	}

	if err := s.store.SetDeviceState(ctx, deviceUUID, string(next)); err != nil {
		return "", err
	}
	return next, nil
}

// GetState returns a device's current rollout state; devices that have
// never reported are idle.
func (s *DeviceStatusService) GetState(ctx context.Context, deviceUUID string) status.State {
	stored, ok := s.store.GetDeviceState(ctx, deviceUUID)
	if !ok {
		return status.StateIdle
	}
	return status.ParseState(stored)
}
