package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const (
	runKeyPrefix    = "upflux:ai:run:"
	statusKeyPrefix = "upflux:device:status:"
)

// Repository persists analysis runs (with TTL) and device rollout states.
// Redis is the primary backend when available; an in-memory map stands in
// otherwise, so a cache outage never fails a computation.
type Repository struct {
	mu     sync.RWMutex
	runs   map[string]memoryRun
	states map[string]string

	client *goredis.Client // nil means memory-only
	ttl    time.Duration
}

type memoryRun struct {
	payload   []byte
	expiresAt time.Time
}

// NewRepository creates a repository. client may be nil.
func NewRepository(client *goredis.Client, ttl time.Duration) *Repository {
	return &Repository{
		runs:   make(map[string]memoryRun),
		states: make(map[string]string),
		client: client,
		ttl:    ttl,
	}
}

// SaveRun stores a run response under its id.
func (r *Repository) SaveRun(ctx context.Context, runID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", runID, err)
	}

	if r.client != nil {
		if err := r.client.Set(ctx, runKeyPrefix+runID, data, r.ttl).Err(); err != nil {
			return fmt.Errorf("failed to store run %s: %w", runID, err)
		}
		return nil
	}

	r.mu.Lock()
	r.runs[runID] = memoryRun{payload: data, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

// GetRun returns a stored run response, or false when absent or expired.
func (r *Repository) GetRun(ctx context.Context, runID string) (json.RawMessage, bool) {
	if r.client != nil {
		data, err := r.client.Get(ctx, runKeyPrefix+runID).Bytes()
		if err != nil {
			return nil, false
		}
		return data, true
	}

	r.mu.RLock()
	item, ok := r.runs[runID]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		r.mu.Lock()
		delete(r.runs, runID)
		r.mu.Unlock()
		return nil, false
	}
	return item.payload, true
}

// SetDeviceState records a device's rollout state. States have no TTL:
// the latest reported state stands until the next event.
func (r *Repository) SetDeviceState(ctx context.Context, deviceUUID, state string) error {
	if r.client != nil {
		if err := r.client.Set(ctx, statusKeyPrefix+deviceUUID, state, 0).Err(); err != nil {
			return fmt.Errorf("failed to store state for %s: %w", deviceUUID, err)
		}
		return nil
	}

	r.mu.Lock()
	r.states[deviceUUID] = state
	r.mu.Unlock()
	return nil
}

// GetDeviceState returns a device's stored rollout state, or false when
// the device has never reported.
func (r *Repository) GetDeviceState(ctx context.Context, deviceUUID string) (string, bool) {
	if r.client != nil {
		state, err := r.client.Get(ctx, statusKeyPrefix+deviceUUID).Result()
		if err != nil {
			return "", false
		}
		return state, true
	}

	r.mu.RLock()
	state, ok := r.states[deviceUUID]
	r.mu.RUnlock()
	return state, ok
}
