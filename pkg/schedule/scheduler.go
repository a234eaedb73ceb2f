// Package schedule computes per-cohort rollout times that respect every
// member device's predicted idle window while keeping cohort rollouts
// from overlapping.
package schedule

import (
	"sort"
	"time"
)

// Options are the fixed time costs of a rollout.
type Options struct {
	Payload time.Duration // the update transfer itself
	Setup   time.Duration // preparation lead before an update
	MinGap  time.Duration // minimum spacing between two scheduled cohorts
}

// Window is one device's predicted idle interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Cohort is scheduling input: a cluster label and its member devices.
type Cohort struct {
	ID      string
	Devices []string
}

// noiseCohortID is the density engine's noise label on the wire. Noise
// devices have no dense neighborhood; they are plotted but never
// scheduled, even when fed back with valid idle windows.
const noiseCohortID = "-1"

// Job is a scheduled rollout for one cohort. WindowStart/WindowEnd is the
// feasible interval (the intersection of member idle windows) and
// UpdateTime the chosen start within it.
type Job struct {
	ClusterID   string
	Devices     []string
	WindowStart time.Time
	WindowEnd   time.Time
	UpdateTime  time.Time
}

// Scheduler assigns rollout times with a greedy forward pass followed by
// a single slack-compressing repair sweep. Fully deterministic: identical
// input and clock produce identical output.
type Scheduler struct {
	opts Options
	now  func() time.Time
}

// New creates a scheduler with the given time costs.
func New(opts Options) *Scheduler {
	return &Scheduler{opts: opts, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Schedule runs the three stages over a batch of cohorts. windows maps a
// device uuid to its single known idle window; cohorts with incomplete
// idle data or no usable window are silently absent from the result, not
// errors, since partial fleet data must not block the rest of the batch.
// Result order follows the placement sweep (ascending feasible window
// start), not input order.
func (s *Scheduler) Schedule(cohorts []Cohort, windows map[string]Window) []Job {
	jobs := s.feasible(cohorts, windows)

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].WindowStart.Before(jobs[j].WindowStart)
	})

	scheduled := s.place(jobs)
	s.repair(scheduled)
	return scheduled
}

// feasible intersects member idle windows per cohort. A cohort is dropped
// when it is the noise cohort, a member has no window, a member window is
// shorter than payload+setup, or the intersection is shorter than payload.
func (s *Scheduler) feasible(cohorts []Cohort, windows map[string]Window) []Job {
	var jobs []Job
	for _, c := range cohorts {
		if c.ID == noiseCohortID || len(c.Devices) == 0 {
			continue
		}
		var latestStart, earliestEnd time.Time
		usable := true
		for i, d := range c.Devices {
			w, ok := windows[d]
			if !ok {
				usable = false
				break
			}
			if w.End.Sub(w.Start) < s.opts.Payload+s.opts.Setup {
				usable = false
				break
			}
			if i == 0 || w.Start.After(latestStart) {
				latestStart = w.Start
			}
			if i == 0 || w.End.Before(earliestEnd) {
				earliestEnd = w.End
			}
		}
		if !usable || earliestEnd.Sub(latestStart) < s.opts.Payload {
			continue
		}
		jobs = append(jobs, Job{
			ClusterID:   c.ID,
			Devices:     c.Devices,
			WindowStart: latestStart,
			WindowEnd:   earliestEnd,
		})
	}
	return jobs
}

// place is a single forward greedy sweep: no backtracking, no reordering
// once sorted. The cursor advances by at least MinGap so consecutive
// cohorts never contend for the controller.
func (s *Scheduler) place(jobs []Job) []Job {
	now := s.now()
	current := now
	earliest := now.Add(s.opts.Setup)

	advance := s.opts.Payload
	if s.opts.MinGap > advance {
		advance = s.opts.MinGap
	}

	var scheduled []Job
	for _, j := range jobs {
		start := j.WindowStart
		if current.After(start) {
			start = current
		}
		if earliest.After(start) {
			start = earliest
		}
		if start.Add(s.opts.Payload).After(j.WindowEnd) {
			// Window closed before a conflict-free slot existed.
			continue
		}
		j.UpdateTime = start
		scheduled = append(scheduled, j)
		current = start.Add(advance)
	}
	return scheduled
}

// repair is one backward-looking pass that pulls each job to the earliest
// start still clear of its predecessor, reclaiming slack left by the
// MinGap rule. It only ever moves jobs earlier within their own feasible
// window, so it can shrink gaps but never create overlap.
func (s *Scheduler) repair(scheduled []Job) {
	for i := 1; i < len(scheduled); i++ {
		ideal := scheduled[i-1].UpdateTime.Add(s.opts.Payload)
		if scheduled[i].WindowStart.After(ideal) {
			ideal = scheduled[i].WindowStart
		}
		if !ideal.Add(s.opts.Payload).After(scheduled[i].WindowEnd) {
			scheduled[i].UpdateTime = ideal
		}
	}
}
