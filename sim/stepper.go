package sim

import (
	"fmt"
	"slices"

	"github.com/schedsim/schedsim/sim/trace"
)

// UnschedulablePenalty is the reward reported for dispatching a process
// that is not among the remaining ones. Learning callers use it as a
// negative-reward signal.
const UnschedulablePenalty = -100.0

// StepResult is the outcome of one Stepper.Step call.
type StepResult struct {
	Interval Interval // the slice that ran; zero on an unschedulable action
	Reward   float64  // minus the waiting time of the dispatched process
	Done     bool     // no processes remain
}

// Stepper lets a caller choose the dispatch order itself. Each Step runs
// the chosen process to completion, idling until its arrival if needed.
//
// Unlike Simulate, a Stepper is stateful. It is not safe for concurrent use.
type Stepper struct {
	processes []Process
	byID      map[int]int
	remaining []int // process ids not yet dispatched, input order
	clock     int64
	schedule  Schedule
	trace     *trace.SimulationTrace
}

// NewStepper validates processes and returns a Stepper at clock 0.
func NewStepper(processes []Process) (*Stepper, error) {
	if err := validateProcesses(processes, false); err != nil {
		return nil, err
	}
	s := &Stepper{
		processes: slices.Clone(processes),
		byID:      make(map[int]int, len(processes)),
	}
	for i, p := range s.processes {
		s.byID[p.ID] = i
	}
	s.Reset()
	return s, nil
}

// SetTrace attaches a caller-owned decision trace; nil detaches it.
func (s *Stepper) SetTrace(tr *trace.SimulationTrace) {
	s.trace = tr
}

// Reset returns the Stepper to clock 0 with every process remaining.
func (s *Stepper) Reset() {
	s.remaining = make([]int, len(s.processes))
	for i, p := range s.processes {
		s.remaining[i] = p.ID
	}
	s.clock = 0
	s.schedule = make(Schedule, 0, len(s.processes))
}

// Step dispatches pid. When pid is not remaining, the state is untouched,
// the result carries UnschedulablePenalty and the error wraps
// ErrUnschedulableAction.
func (s *Stepper) Step(pid int) (StepResult, error) {
	pos := slices.Index(s.remaining, pid)
	if pos < 0 {
		return StepResult{Reward: UnschedulablePenalty, Done: s.Done()},
			fmt.Errorf("%w: process %d is not among remaining processes %v", ErrUnschedulableAction, pid, s.remaining)
	}

	p := s.processes[s.byID[pid]]
	start := max(s.clock, p.ArrivalTime)
	if start > s.clock {
		s.trace.RecordIdle(trace.IdleRecord{From: s.clock, To: start})
	}
	iv := Interval{ProcessID: pid, Start: start, End: start + p.BurstTime}
	s.trace.RecordDispatch(trace.DispatchRecord{
		Clock:      start,
		ProcessID:  pid,
		Duration:   p.BurstTime,
		ReadyCount: s.readyAt(start),
		Reason:     trace.ReasonForcedOrder,
	})

	s.schedule = append(s.schedule, iv)
	s.remaining = slices.Delete(s.remaining, pos, pos+1)
	s.clock = iv.End

	return StepResult{
		Interval: iv,
		Reward:   -float64(start - p.ArrivalTime),
		Done:     s.Done(),
	}, nil
}

// readyAt counts the remaining processes that have arrived by clock.
func (s *Stepper) readyAt(clock int64) int {
	n := 0
	for _, pid := range s.remaining {
		if s.processes[s.byID[pid]].ArrivalTime <= clock {
			n++
		}
	}
	return n
}

// Remaining returns the ids not yet dispatched, in input order.
func (s *Stepper) Remaining() []int {
	return slices.Clone(s.remaining)
}

// Clock returns the end of the last dispatched interval.
func (s *Stepper) Clock() int64 {
	return s.clock
}

// Done reports whether every process has been dispatched.
func (s *Stepper) Done() bool {
	return len(s.remaining) == 0
}

// Schedule returns a copy of the intervals produced so far.
func (s *Stepper) Schedule() Schedule {
	return slices.Clone(s.schedule)
}

// ScheduleInOrder dispatches processes in the given id order, each running to
// completion. It is the evaluation a permutation search performs for every
// candidate ordering. Unknown or repeated ids wrap ErrUnschedulableAction; an
// order that leaves processes undispatched wraps ErrInvalidInput.
func ScheduleInOrder(processes []Process, order []int) (Schedule, error) {
	s, err := NewStepper(processes)
	if err != nil {
		return nil, err
	}
	for _, pid := range order {
		if _, err := s.Step(pid); err != nil {
			return nil, err
		}
	}
	if !s.Done() {
		return nil, fmt.Errorf("%w: order leaves processes %v undispatched", ErrInvalidInput, s.remaining)
	}
	return s.schedule, nil
}
