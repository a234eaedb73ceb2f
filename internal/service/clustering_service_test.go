package service

import (
	"context"
	"strings"
	"testing"

	"upflux-ai/internal/model"
	"upflux-ai/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func telemetry(uuid string, busy, cpu, mem, net float64) model.DeviceTelemetry {
	return model.DeviceTelemetry{
		DeviceUUID:   uuid,
		BusyFraction: busy,
		AvgCPU:       cpu,
		AvgMem:       mem,
		AvgNet:       net,
	}
}

func TestRunClustering_SeparatesDissimilarDevices(t *testing.T) {
	svc := NewClusteringService(config.DefaultClusteringConfig(), nil).WithSeed(1)

	resp, err := svc.RunClustering(context.Background(), []model.DeviceTelemetry{
		telemetry("dev-a", 0.9, 80, 70, 50),
		telemetry("dev-b", 0.1, 10, 10, 5),
	})
	require.NoError(t, err)

	// Two very different usage profiles never share a cohort.
	byDevice := make(map[string]string)
	for _, p := range resp.PlotData {
		if !p.IsSynthetic {
			byDevice[p.DeviceUUID] = p.ClusterID
		}
	}
	require.Len(t, byDevice, 2)
	assert.NotEqual(t, byDevice["dev-a"], byDevice["dev-b"])
	assert.NotEqual(t, "-1", byDevice["dev-a"])
	assert.NotEqual(t, "-1", byDevice["dev-b"])
}

func TestRunClustering_EveryDeviceInExactlyOneCluster(t *testing.T) {
	svc := NewClusteringService(config.DefaultClusteringConfig(), nil).WithSeed(1)
	input := []model.DeviceTelemetry{
		telemetry("dev-a", 0.9, 80, 70, 50),
		telemetry("dev-b", 0.1, 10, 10, 5),
		telemetry("dev-c", 0.85, 75, 72, 48),
		telemetry("dev-d", 0.15, 12, 11, 6),
	}

	resp, err := svc.RunClustering(context.Background(), input)
	require.NoError(t, err)

	appearances := make(map[string]int)
	for _, c := range resp.Clusters {
		for _, d := range c.DeviceUUIDs {
			appearances[d]++
		}
	}
	for _, in := range input {
		assert.Equal(t, 1, appearances[in.DeviceUUID], "device %s", in.DeviceUUID)
	}

	realPoints := make(map[string]int)
	for _, p := range resp.PlotData {
		if !p.IsSynthetic {
			realPoints[p.DeviceUUID]++
		}
	}
	for _, in := range input {
		assert.Equal(t, 1, realPoints[in.DeviceUUID], "device %s", in.DeviceUUID)
	}
}

func TestRunClustering_SyntheticPadding(t *testing.T) {
	cfg := config.DefaultClusteringConfig()
	svc := NewClusteringService(cfg, nil).WithSeed(1)

	resp, err := svc.RunClustering(context.Background(), []model.DeviceTelemetry{
		telemetry("dev-a", 0.9, 80, 70, 50),
		telemetry("dev-b", 0.1, 10, 10, 5),
	})
	require.NoError(t, err)

	var synthetic, real int
	ids := make(map[string]struct{})
	for _, p := range resp.PlotData {
		if p.IsSynthetic {
			synthetic++
			assert.True(t, strings.HasPrefix(p.DeviceUUID, "synthetic_"))
			_, dup := ids[p.DeviceUUID]
			assert.False(t, dup, "synthetic id %s reused", p.DeviceUUID)
			ids[p.DeviceUUID] = struct{}{}
		} else {
			real++
		}
	}
	assert.Equal(t, 2, real)
	// Per-cohort rounding keeps the total within one point per cohort of
	// the fill target.
	fill := cfg.TargetTotalPoints - real
	assert.InDelta(t, fill, synthetic, 2)

	// Placeholder cohorts exist for the padded groups and hold no devices.
	var placeholders int
	for _, c := range resp.Clusters {
		if strings.HasPrefix(c.ClusterID, "S") {
			placeholders++
			assert.Empty(t, c.DeviceUUIDs)
		}
	}
	assert.Equal(t, 2, placeholders)
}

func TestRunClustering_NoPaddingWhenFleetIsLarge(t *testing.T) {
	cfg := config.DefaultClusteringConfig()
	cfg.TargetTotalPoints = 3
	svc := NewClusteringService(cfg, nil).WithSeed(1)

	resp, err := svc.RunClustering(context.Background(), []model.DeviceTelemetry{
		telemetry("dev-a", 0.9, 80, 70, 50),
		telemetry("dev-b", 0.1, 10, 10, 5),
		telemetry("dev-c", 0.5, 40, 45, 20),
	})
	require.NoError(t, err)

	for _, p := range resp.PlotData {
		assert.False(t, p.IsSynthetic)
	}
	for _, c := range resp.Clusters {
		assert.False(t, strings.HasPrefix(c.ClusterID, "S"))
	}
}

func TestRunClustering_SingleDeviceTrivialCohort(t *testing.T) {
	svc := NewClusteringService(config.DefaultClusteringConfig(), nil)

	resp, err := svc.RunClustering(context.Background(), []model.DeviceTelemetry{
		telemetry("dev-a", 0.5, 50, 50, 25),
	})
	require.NoError(t, err)

	require.Len(t, resp.Clusters, 1)
	assert.Equal(t, "0", resp.Clusters[0].ClusterID)
	assert.Equal(t, []string{"dev-a"}, resp.Clusters[0].DeviceUUIDs)
	require.Len(t, resp.PlotData, 1)
	assert.Equal(t, 0.0, resp.PlotData[0].X)
	assert.Equal(t, 0.0, resp.PlotData[0].Y)
}

func TestRunClustering_InvalidInput(t *testing.T) {
	svc := NewClusteringService(config.DefaultClusteringConfig(), nil)
	ctx := context.Background()

	_, err := svc.RunClustering(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RunClustering(ctx, []model.DeviceTelemetry{
		telemetry("", 0.5, 50, 50, 25),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RunClustering(ctx, []model.DeviceTelemetry{
		telemetry("dev-a", 0.5, 50, 50, 25),
		telemetry("dev-a", 0.6, 60, 60, 30),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunClustering_SeededRunsAreIdentical(t *testing.T) {
	input := []model.DeviceTelemetry{
		telemetry("dev-a", 0.9, 80, 70, 50),
		telemetry("dev-b", 0.1, 10, 10, 5),
		telemetry("dev-c", 0.85, 75, 72, 48),
	}

	a, err := NewClusteringService(config.DefaultClusteringConfig(), nil).WithSeed(9).
		RunClustering(context.Background(), input)
	require.NoError(t, err)
	b, err := NewClusteringService(config.DefaultClusteringConfig(), nil).WithSeed(9).
		RunClustering(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
