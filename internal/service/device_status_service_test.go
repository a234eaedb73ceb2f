package service

import (
	"context"
	"testing"
	"time"

	"upflux-ai/pkg/status"
	redisstore "upflux-ai/pkg/store/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusService() *DeviceStatusService {
	return NewDeviceStatusService(redisstore.NewRepository(nil, time.Hour))
}

func TestApplyEvent_FullInstallCycle(t *testing.T) {
	svc := newStatusService()
	ctx := context.Background()

	assert.Equal(t, status.StateIdle, svc.GetState(ctx, "dev-a"))

	next, err := svc.ApplyEvent(ctx, "dev-a", "INSTALL_STARTED")
	require.NoError(t, err)
	assert.Equal(t, status.StateInstalling, next)

	next, err = svc.ApplyEvent(ctx, "dev-a", "INSTALL_SUCCEEDED")
	require.NoError(t, err)
	assert.Equal(t, status.StateIdle, next)
}

func TestApplyEvent_FailureAndRetry(t *testing.T) {
	svc := newStatusService()
	ctx := context.Background()

	_, err := svc.ApplyEvent(ctx, "dev-a", "INSTALL_STARTED")
	require.NoError(t, err)

	next, err := svc.ApplyEvent(ctx, "dev-a", "INSTALL_FAILED")
	require.NoError(t, err)
	assert.Equal(t, status.StateFailed, next)
	assert.Equal(t, status.StateFailed, svc.GetState(ctx, "dev-a"))

	next, err = svc.ApplyEvent(ctx, "dev-a", "INSTALL_STARTED")
	require.NoError(t, err)
	assert.Equal(t, status.StateInstalling, next)
}

func TestApplyEvent_IllegalTransitionLeavesStateUntouched(t *testing.T) {
	svc := newStatusService()
	ctx := context.Background()

	_, err := svc.ApplyEvent(ctx, "dev-a", "INSTALL_SUCCEEDED")
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
	assert.Equal(t, status.StateIdle, svc.GetState(ctx, "dev-a"))
}

func TestApplyEvent_UnknownEvent(t *testing.T) {
	svc := newStatusService()

	_, err := svc.ApplyEvent(context.Background(), "dev-a", "POWER_CYCLED")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetState_PerDeviceIsolation(t *testing.T) {
	svc := newStatusService()
	ctx := context.Background()

	_, err := svc.ApplyEvent(ctx, "dev-a", "INSTALL_STARTED")
	require.NoError(t, err)

	assert.Equal(t, status.StateInstalling, svc.GetState(ctx, "dev-a"))
	assert.Equal(t, status.StateIdle, svc.GetState(ctx, "dev-b"))
}
