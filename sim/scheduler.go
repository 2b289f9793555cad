package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// Policy names a scheduling policy.
type Policy string

const (
	PolicyFCFS               Policy = "fcfs"
	PolicyRoundRobin         Policy = "round-robin"
	PolicyPriority           Policy = "priority"
	PolicySJF                Policy = "sjf"
	PolicyPreemptivePriority Policy = "preemptive-priority"
)

// AllPolicies lists every policy in presentation order.
var AllPolicies = []Policy{
	PolicyFCFS,
	PolicyRoundRobin,
	PolicyPriority,
	PolicySJF,
	PolicyPreemptivePriority,
}

// ValidPolicies is the set of recognized policy names, aliases included.
// Shared by ParsePolicy and PolicyBundle.Validate.
var ValidPolicies = map[string]Policy{
	"":                    PolicyFCFS, // empty defaults to fcfs (CLI flag default compatibility)
	"fcfs":                PolicyFCFS,
	"round-robin":         PolicyRoundRobin,
	"rr":                  PolicyRoundRobin,
	"priority":            PolicyPriority,
	"sjf":                 PolicySJF,
	"preemptive-priority": PolicyPreemptivePriority,
}

// IsValidPolicy reports whether name is a recognized policy name or alias.
// Matching is case-insensitive and ignores surrounding whitespace.
func IsValidPolicy(name string) bool {
	_, ok := ValidPolicies[normalizePolicyName(name)]
	return ok
}

// ParsePolicy resolves a policy name or alias.
func ParsePolicy(name string) (Policy, error) {
	p, ok := ValidPolicies[normalizePolicyName(name)]
	if !ok {
		return "", fmt.Errorf("%w: unknown policy %q; valid: %s", ErrInvalidInput, name, strings.Join(policyNames(), ", "))
	}
	return p, nil
}

func normalizePolicyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Preemptive reports whether the policy may split a process across intervals.
func (p Policy) Preemptive() bool {
	return p == PolicyRoundRobin || p == PolicyPreemptivePriority
}

// UsesPriority reports whether the policy requires every process to carry a priority.
func (p Policy) UsesPriority() bool {
	return p == PolicyPriority || p == PolicyPreemptivePriority
}

func (p Policy) String() string {
	return string(p)
}

// Params holds the per-call knobs of Simulate.
type Params struct {
	TimeQuantum int64                  // round robin slice length; must be > 0 for PolicyRoundRobin
	Coalesce    bool                   // merge touching same-process intervals before returning
	Trace       *trace.SimulationTrace // caller-owned decision trace; nil disables tracing
}

// Simulate computes the schedule the given policy produces for processes.
// It never mutates processes and keeps no state between calls: identical
// arguments always yield identical schedules.
func Simulate(processes []Process, policy Policy, params Params) (Schedule, error) {
	var (
		schedule Schedule
		err      error
	)
	switch policy {
	case PolicyFCFS:
		schedule, err = fcfs(processes, params.Trace)
	case PolicyRoundRobin:
		schedule, err = roundRobin(processes, params.TimeQuantum, params.Trace)
	case PolicyPriority:
		schedule, err = nonPreemptive(processes, true, priorityKey, trace.ReasonMinPriority, params.Trace)
	case PolicySJF:
		schedule, err = nonPreemptive(processes, false, burstKey, trace.ReasonShortestBurst, params.Trace)
	case PolicyPreemptivePriority:
		schedule, err = preemptivePriority(processes, params.Trace)
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, policy)
	}
	if err != nil {
		return nil, err
	}
	if params.Coalesce {
		schedule = Compact(schedule)
	}
	logrus.Debugf("simulate: policy=%s processes=%d intervals=%d makespan=%d",
		policy, len(processes), len(schedule), Makespan(schedule))
	return schedule, nil
}

// FCFS schedules processes first-come-first-served.
func FCFS(processes []Process) (Schedule, error) {
	return fcfs(processes, nil)
}

// RoundRobin schedules processes in time slices of quantum.
func RoundRobin(processes []Process, quantum int64) (Schedule, error) {
	return roundRobin(processes, quantum, nil)
}

// PriorityNonPreemptive runs the highest-priority (lowest value) arrived process to completion.
func PriorityNonPreemptive(processes []Process) (Schedule, error) {
	return nonPreemptive(processes, true, priorityKey, trace.ReasonMinPriority, nil)
}

// ShortestJobFirst runs the arrived process with the smallest burst to completion.
// Warning: SJF can starve long processes under sustained arrivals.
func ShortestJobFirst(processes []Process) (Schedule, error) {
	return nonPreemptive(processes, false, burstKey, trace.ReasonShortestBurst, nil)
}

// PreemptivePriority re-evaluates the highest-priority arrived process every time unit.
func PreemptivePriority(processes []Process) (Schedule, error) {
	return preemptivePriority(processes, nil)
}

// Compact merges consecutive intervals of the same process whose ends touch.
// Per-process totals, last end times and distinct counts are unchanged, so
// every metric is identical before and after compaction.
func Compact(schedule Schedule) Schedule {
	if len(schedule) == 0 {
		return Schedule{}
	}
	out := make(Schedule, 0, len(schedule))
	cur := schedule[0]
	for _, iv := range schedule[1:] {
		if iv.ProcessID == cur.ProcessID && iv.Start == cur.End {
			cur.End = iv.End
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	return append(out, cur)
}

func policyNames() []string {
	names := make([]string, 0, len(ValidPolicies))
	for name := range ValidPolicies {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
