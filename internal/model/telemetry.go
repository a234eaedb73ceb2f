package model

// DeviceTelemetry is one managed device's averaged resource usage
// snapshot. Immutable input record, one per device per clustering
// request.
type DeviceTelemetry struct {
	DeviceUUID   string  `json:"deviceUuid"`
	BusyFraction float64 `json:"busyFraction"`
	AvgCPU       float64 `json:"avgCpu"`
	AvgMem       float64 `json:"avgMem"`
	AvgNet       float64 `json:"avgNet"`
}

// FeatureVector returns the ordered 4-tuple consumed by the clustering
// pipeline. Never exposed on the wire.
func (t *DeviceTelemetry) FeatureVector() []float64 {
	return []float64{t.BusyFraction, t.AvgCPU, t.AvgMem, t.AvgNet}
}

// Cluster is an update cohort: devices with similar usage patterns
// selected for synchronized scheduling. DeviceUUIDs keeps input order.
// The noise label "-1" holds devices with no dense neighborhood; it is
// plotted but never scheduled. Label values are engine-assigned and
// carry no ordering semantics across requests.
type Cluster struct {
	ClusterID   string   `json:"clusterId"`
	DeviceUUIDs []string `json:"deviceUuids"`
}

// PlotPoint is one dot on the fleet scatter plot, real or synthetic.
// Synthetic points carry the clusterId of the real cohort whose centroid
// they were sampled around and never appear in any deviceUuids list.
type PlotPoint struct {
	DeviceUUID  string  `json:"deviceUuid"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ClusterID   string  `json:"clusterId"`
	IsSynthetic bool    `json:"isSynthetic"`
}

// ClusteringResponse is the clustering operation output.
type ClusteringResponse struct {
	RunID    string      `json:"runId,omitempty"`
	Clusters []Cluster   `json:"clusters"`
	PlotData []PlotPoint `json:"plotData"`
}
