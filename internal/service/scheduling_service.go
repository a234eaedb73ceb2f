package service

import (
	"context"
	"fmt"
	"time"

	"upflux-ai/internal/model"
	"upflux-ai/pkg/config"
	"upflux-ai/pkg/logger"
	"upflux-ai/pkg/schedule"
	redisstore "upflux-ai/pkg/store/redis"

	"github.com/google/uuid"
)

// SchedulingService turns cohort membership plus the aggregator's idle
// window feed into a conflict-minimized rollout schedule.
type SchedulingService struct {
	scheduler *schedule.Scheduler
	store     *redisstore.Repository
}

// NewSchedulingService creates a scheduling service from the configured
// time costs. store may be nil to disable run history.
func NewSchedulingService(cfg config.SchedulingConfig, store *redisstore.Repository) *SchedulingService {
	sched := schedule.New(schedule.Options{
		Payload: time.Duration(cfg.PayloadSeconds) * time.Second,
		Setup:   time.Duration(cfg.SetupSeconds) * time.Second,
		MinGap:  time.Duration(cfg.MinGapSeconds) * time.Second,
	})
	return &SchedulingService{scheduler: sched, store: store}
}

// WithClock replaces the scheduler's wall clock, for tests.
func (s *SchedulingService) WithClock(now func() time.Time) *SchedulingService {
	s.scheduler.WithClock(now)
	return s
}

// RunScheduling computes rollout times for the given cohorts. A device
// with an empty nextIdleTime simply has no window (its cohort is dropped
// in the feasibility stage); an unparseable timestamp or negative
// duration fails the whole request because it signals corrupt upstream
// data.
func (s *SchedulingService) RunScheduling(ctx context.Context, req *model.SchedulingRequest) (*model.SchedulingResponse, error) {
	if req.Clusters == nil {
		return nil, fmt.Errorf("%w: clusters required", ErrInvalidInput)
	}

	windows := make(map[string]schedule.Window, len(req.AggregatorData))
	for _, rec := range req.AggregatorData {
		if rec.NextIdleTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, rec.NextIdleTime)
		if err != nil {
			return nil, fmt.Errorf("%w: nextIdleTime %q for %s: %v",
				ErrInvalidInput, rec.NextIdleTime, rec.DeviceUUID, err)
		}
		if rec.IdleDurationSecs < 0 {
			return nil, fmt.Errorf("%w: negative idleDurationSecs for %s",
				ErrInvalidInput, rec.DeviceUUID)
		}
		windows[rec.DeviceUUID] = schedule.Window{
			Start: start,
			End:   start.Add(time.Duration(rec.IdleDurationSecs) * time.Second),
		}
	}

	cohorts := make([]schedule.Cohort, 0, len(req.Clusters))
	for _, c := range req.Clusters {
		cohorts = append(cohorts, schedule.Cohort{ID: c.ClusterID, Devices: c.DeviceUUIDs})
	}

	jobs := s.scheduler.Schedule(cohorts, windows)
	logger.DebugCtx(ctx, "scheduled %d of %d cohorts", len(jobs), len(cohorts))

	resp := &model.SchedulingResponse{Clusters: make([]model.ScheduledCluster, 0, len(jobs))}
	for _, j := range jobs {
		resp.Clusters = append(resp.Clusters, model.ScheduledCluster{
			ClusterID:     j.ClusterID,
			DeviceUUIDs:   j.Devices,
			UpdateTimeUTC: j.UpdateTime.UTC().Format(time.RFC3339),
		})
	}

	s.persistRun(ctx, resp)
	return resp, nil
}

func (s *SchedulingService) persistRun(ctx context.Context, resp *model.SchedulingResponse) {
	if s.store == nil {
		return
	}
	runID := uuid.New().String()
	resp.RunID = runID
	if err := s.store.SaveRun(ctx, runID, resp); err != nil {
		logger.WarnCtx(ctx, "failed to persist run %s: %v", runID, err)
	}
}
