// Defines the Process input descriptor, the Interval/Schedule output, and the
// validation every policy runs before simulating.

package sim

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidInput is returned before any simulation work when the process
	// set or policy parameters cannot be scheduled.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnschedulableAction is returned when a caller asks to dispatch a
	// process that is not among the remaining eligible processes.
	ErrUnschedulableAction = errors.New("unschedulable action")
)

// Process is an abstract task to be scheduled.
// Lower Priority values mean higher priority. Priority is nil when the
// workload does not carry one; priority-based policies reject such input.
type Process struct {
	ID          int   `yaml:"id"`
	ArrivalTime int64 `yaml:"arrival_time"`
	BurstTime   int64 `yaml:"burst_time"`
	Priority    *int  `yaml:"priority,omitempty"`
}

// PriorityValue returns the process priority, or 0 when unset.
func (p Process) PriorityValue() int {
	if p.Priority == nil {
		return 0
	}
	return *p.Priority
}

func (p Process) String() string {
	if p.Priority == nil {
		return fmt.Sprintf("P%d(arr=%d, burst=%d)", p.ID, p.ArrivalTime, p.BurstTime)
	}
	return fmt.Sprintf("P%d(arr=%d, burst=%d, prio=%d)", p.ID, p.ArrivalTime, p.BurstTime, *p.Priority)
}

// Interval is one contiguous stretch of CPU time given to a process.
// Start is inclusive, End exclusive; Start < End always holds.
type Interval struct {
	ProcessID int   `json:"process_id" yaml:"process_id"`
	Start     int64 `json:"start" yaml:"start"`
	End       int64 `json:"end" yaml:"end"`
}

// Duration returns End - Start.
func (iv Interval) Duration() int64 {
	return iv.End - iv.Start
}

// Schedule is a chronological, non-overlapping sequence of intervals.
type Schedule []Interval

// ProcessIDs returns the distinct process ids in order of first appearance.
func (s Schedule) ProcessIDs() []int {
	seen := make(map[int]bool, len(s))
	ids := make([]int, 0, len(s))
	for _, iv := range s {
		if !seen[iv.ProcessID] {
			seen[iv.ProcessID] = true
			ids = append(ids, iv.ProcessID)
		}
	}
	return ids
}

// IntervalsFor returns the intervals belonging to pid, preserving order.
func (s Schedule) IntervalsFor(pid int) []Interval {
	var out []Interval
	for _, iv := range s {
		if iv.ProcessID == pid {
			out = append(out, iv)
		}
	}
	return out
}

// Equal reports whether two schedules contain identical intervals in identical order.
func (s Schedule) Equal(other Schedule) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// validateProcesses checks the invariants shared by every policy.
// requirePriority is set by the priority-based policies.
func validateProcesses(processes []Process, requirePriority bool) error {
	if len(processes) == 0 {
		return fmt.Errorf("%w: process list is empty", ErrInvalidInput)
	}
	seen := make(map[int]bool, len(processes))
	for i, p := range processes {
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate process id %d", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
		if p.BurstTime <= 0 {
			return fmt.Errorf("%w: process %d: burst_time must be positive, got %d", ErrInvalidInput, p.ID, p.BurstTime)
		}
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%w: process %d: arrival_time must be non-negative, got %d", ErrInvalidInput, p.ID, p.ArrivalTime)
		}
		if requirePriority && p.Priority == nil {
			return fmt.Errorf("%w: processes[%d] (id %d) has no priority", ErrInvalidInput, i, p.ID)
		}
	}
	return nil
}

// sortedByArrival returns a copy of processes sorted by arrival time.
// Ties keep their input order; the caller's slice is never reordered.
func sortedByArrival(processes []Process) []Process {
	sorted := make([]Process, len(processes))
	copy(sorted, processes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ArrivalTime < sorted[j].ArrivalTime
	})
	return sorted
}
