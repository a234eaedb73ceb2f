package model

// IdleWindowRecord is the aggregator feed: one current predicted idle
// window per device. NextIdleTime is ISO-8601 UTC, accepting either a
// literal Z suffix or a +00:00 offset; an empty value means the device
// currently has no predicted window.
type IdleWindowRecord struct {
	DeviceUUID       string `json:"deviceUuid"`
	NextIdleTime     string `json:"nextIdleTime"`
	IdleDurationSecs int64  `json:"idleDurationSecs"`
}

// SchedulingRequest is the scheduling operation input.
type SchedulingRequest struct {
	Clusters       []Cluster          `json:"clusters"`
	AggregatorData []IdleWindowRecord `json:"aggregatorData"`
}

// ScheduledCluster is one cohort with its chosen rollout start time.
// UpdateTimeUTC is ISO-8601 UTC with a literal Z suffix.
type ScheduledCluster struct {
	ClusterID     string   `json:"clusterId"`
	DeviceUUIDs   []string `json:"deviceUuids"`
	UpdateTimeUTC string   `json:"updateTimeUtc"`
}

// SchedulingResponse is the scheduling operation output. Only feasible
// cohorts appear; order follows the placement sweep, not input order.
type SchedulingResponse struct {
	RunID    string             `json:"runId,omitempty"`
	Clusters []ScheduledCluster `json:"clusters"`
}
