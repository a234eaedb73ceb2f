package service

import (
	"context"
	"fmt"
	"strconv"

	"upflux-ai/internal/model"
	"upflux-ai/pkg/cluster"
	"upflux-ai/pkg/config"
	"upflux-ai/pkg/features"
	"upflux-ai/pkg/logger"
	"upflux-ai/pkg/projection"
	redisstore "upflux-ai/pkg/store/redis"

	"github.com/google/uuid"
)

// noiseLabel is the wire form of the density engine's noise label.
var noiseLabel = strconv.Itoa(cluster.Noise)

// ClusteringService runs the full clustering-for-display pipeline:
// standardize telemetry, density-partition into cohorts, project to 2-D
// and pad sparse fleets with synthetic plot points.
type ClusteringService struct {
	cfg   config.ClusteringConfig
	store *redisstore.Repository

	// seed pins the synthetic-point RNG; zero draws from the clock.
	seed uint64
}

// NewClusteringService creates a clustering service. store may be nil to
// disable run history.
func NewClusteringService(cfg config.ClusteringConfig, store *redisstore.Repository) *ClusteringService {
	return &ClusteringService{cfg: cfg, store: store}
}

// WithSeed fixes the synthetic-point RNG seed, for tests.
func (s *ClusteringService) WithSeed(seed uint64) *ClusteringService {
	s.seed = seed
	return s
}

// RunClustering partitions the fleet and builds the plot payload. Pure
// per-request computation; nothing survives the call except the
// optional history entry.
func (s *ClusteringService) RunClustering(ctx context.Context, telemetry []model.DeviceTelemetry) (*model.ClusteringResponse, error) {
	if len(telemetry) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(telemetry))
	for _, t := range telemetry {
		if t.DeviceUUID == "" {
			return nil, fmt.Errorf("%w: deviceUuid required", ErrInvalidInput)
		}
		if _, dup := seen[t.DeviceUUID]; dup {
			return nil, fmt.Errorf("%w: duplicate deviceUuid %s", ErrInvalidInput, t.DeviceUUID)
		}
		seen[t.DeviceUUID] = struct{}{}
	}

	// Variance is undefined for a single device; degrade to one trivial
	// cohort instead of failing the request.
	if len(telemetry) < 2 {
		logger.WarnCtx(ctx, "fleet of %d device(s), returning trivial cohort", len(telemetry))
		resp := s.trivial(telemetry)
		s.persistRun(ctx, resp, func(id string) { resp.RunID = id })
		return resp, nil
	}

	vectors := make([][]float64, len(telemetry))
	for i := range telemetry {
		vectors[i] = telemetry[i].FeatureVector()
	}
	scaled, err := features.Standardize(vectors)
	if err != nil {
		return nil, err
	}

	engine := cluster.NewEngine(s.cfg.MinSamples)
	var labels []int
	if s.cfg.TargetClusters > 0 {
		tuned := engine.TuneEps(scaled, s.cfg.EpsMin, s.cfg.EpsMax, s.cfg.EpsStep, s.cfg.TargetClusters)
		labels = tuned.Labels
		logger.DebugCtx(ctx, "radius search kept eps=%.2f with %d cohorts", tuned.Eps, tuned.Clusters)
	} else {
		labels = engine.Partition(scaled, s.cfg.FixedEps)
	}

	pca, err := projection.FitPCA(scaled)
	if err != nil {
		return nil, err
	}

	resp := &model.ClusteringResponse{}

	// Cohort membership in first-appearance order, real plot points in
	// input order.
	var order []string
	members := make(map[string][]int)
	for i, t := range telemetry {
		cid := strconv.Itoa(labels[i])
		if _, ok := members[cid]; !ok {
			order = append(order, cid)
		}
		members[cid] = append(members[cid], i)

		x, y := pca.Project(scaled[i])
		resp.PlotData = append(resp.PlotData, model.PlotPoint{
			DeviceUUID: t.DeviceUUID,
			X:          x,
			Y:          y,
			ClusterID:  cid,
		})
	}

	synClusters := s.addSyntheticPoints(resp, order, members, scaled, pca)

	for _, cid := range order {
		devs := make([]string, 0, len(members[cid]))
		for _, i := range members[cid] {
			devs = append(devs, telemetry[i].DeviceUUID)
		}
		resp.Clusters = append(resp.Clusters, model.Cluster{ClusterID: cid, DeviceUUIDs: devs})
	}
	// Placeholder cohorts keep synthetic points grouped on the plot while
	// excluding them from anything schedulable.
	for k := 1; k <= synClusters; k++ {
		resp.Clusters = append(resp.Clusters, model.Cluster{
			ClusterID:   fmt.Sprintf("S%d", k),
			DeviceUUIDs: []string{},
		})
	}

	s.persistRun(ctx, resp, func(id string) { resp.RunID = id })
	return resp, nil
}

// addSyntheticPoints pads the plot up to the configured target point
// count and returns how many cohorts received synthetic siblings. Noise
// devices never contribute a centroid and never receive siblings.
func (s *ClusteringService) addSyntheticPoints(resp *model.ClusteringResponse, order []string, members map[string][]int, scaled [][]float64, pca *projection.PCA) int {
	realCount := len(scaled)
	fill := s.cfg.TargetTotalPoints - realCount
	if fill <= 0 {
		return 0
	}

	var ids []string
	var sizes []int
	for _, cid := range order {
		if cid == noiseLabel {
			continue
		}
		ids = append(ids, cid)
		sizes = append(sizes, len(members[cid]))
	}
	shares := projection.FillShares(sizes, realCount, fill)

	gen := projection.NewGenerator(s.cfg.SyntheticSigma, s.seed)
	fakeID := 0
	synClusters := 0
	for k, cid := range ids {
		if shares[k] == 0 {
			continue
		}
		memberVecs := make([][]float64, 0, len(members[cid]))
		for _, i := range members[cid] {
			memberVecs = append(memberVecs, scaled[i])
		}
		centroid := projection.Centroid(memberVecs)
		for _, pt := range gen.Around(centroid, shares[k], pca) {
			resp.PlotData = append(resp.PlotData, model.PlotPoint{
				DeviceUUID:  fmt.Sprintf("synthetic_%04d", fakeID),
				X:           pt[0],
				Y:           pt[1],
				ClusterID:   cid,
				IsSynthetic: true,
			})
			fakeID++
		}
		synClusters++
	}
	return synClusters
}

// trivial is the degenerate single-device result: one cohort holding
// everything, plotted at the origin, no synthetics.
func (s *ClusteringService) trivial(telemetry []model.DeviceTelemetry) *model.ClusteringResponse {
	resp := &model.ClusteringResponse{}
	devs := make([]string, 0, len(telemetry))
	for _, t := range telemetry {
		devs = append(devs, t.DeviceUUID)
		resp.PlotData = append(resp.PlotData, model.PlotPoint{
			DeviceUUID: t.DeviceUUID,
			ClusterID:  "0",
		})
	}
	resp.Clusters = []model.Cluster{{ClusterID: "0", DeviceUUIDs: devs}}
	return resp
}

// persistRun stores the response in run history. History failures only
// warn; the computation already succeeded.
func (s *ClusteringService) persistRun(ctx context.Context, payload interface{}, setID func(string)) {
	if s.store == nil {
		return
	}
	runID := uuid.New().String()
	setID(runID)
	if err := s.store.SaveRun(ctx, runID, payload); err != nil {
		logger.WarnCtx(ctx, "failed to persist run %s: %v", runID, err)
	}
}
