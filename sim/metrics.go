// Derives per-process and schedule-wide timing metrics from a schedule:
// waiting, turnaround and response times, CPU utilization, throughput.

package sim

import (
	"math"
	"sort"
)

// Metrics bundles every statistic derived from one schedule.
// Per-process maps are keyed by process ID.
type Metrics struct {
	Waiting    map[int]int64 // (last end - arrival) - burst
	Turnaround map[int]int64 // last end - arrival
	Response   map[int]int64 // first start - arrival

	AverageWaiting    float64
	AverageTurnaround float64
	AverageResponse   float64

	CPUUtilization     float64 // percent of the span the CPU was busy
	Throughput         float64 // completed processes per time unit; +Inf for a zero span
	Makespan           int64   // last end - first start
	BusyTime           int64   // sum of interval durations
	IdleTime           int64   // Makespan - BusyTime
	ContextSwitches    int     // adjacent intervals of different processes
	CompletedProcesses int     // distinct process ids in the schedule
}

// ComputeMetrics derives all metrics of schedule for processes.
func ComputeMetrics(schedule Schedule, processes []Process) *Metrics {
	m := &Metrics{
		Waiting:    WaitingTimes(schedule, processes),
		Turnaround: TurnaroundTimes(schedule, processes),
		Response:   ResponseTimes(schedule, processes),
	}
	m.AverageWaiting = AverageWaitingTime(m.Waiting)
	m.AverageTurnaround = AverageTurnaroundTime(m.Turnaround)
	m.AverageResponse = CalculateMean(sortedValues(m.Response))
	m.CPUUtilization = CPUUtilization(schedule)
	m.Throughput = Throughput(schedule, processes)
	m.Makespan = Makespan(schedule)
	m.BusyTime = BusyTime(schedule)
	m.IdleTime = IdleTime(schedule)
	m.ContextSwitches = ContextSwitches(schedule)
	m.CompletedProcesses = len(schedule.ProcessIDs())
	return m
}

// ProcessIDs returns the ids present in the per-process maps, ascending.
func (m *Metrics) ProcessIDs() []int {
	return sortedKeys(m.Turnaround)
}

// WaitingTimes returns, per process, the time spent eligible but not running.
// Processes with no interval in schedule report 0.
func WaitingTimes(schedule Schedule, processes []Process) map[int]int64 {
	ends := lastEnds(schedule)
	out := make(map[int]int64, len(processes))
	for _, p := range processes {
		end, ok := ends[p.ID]
		if !ok {
			out[p.ID] = 0
			continue
		}
		out[p.ID] = end - p.ArrivalTime - p.BurstTime
	}
	return out
}

// TurnaroundTimes returns, per process, the time from arrival to completion.
// Processes with no interval in schedule report 0.
func TurnaroundTimes(schedule Schedule, processes []Process) map[int]int64 {
	ends := lastEnds(schedule)
	out := make(map[int]int64, len(processes))
	for _, p := range processes {
		end, ok := ends[p.ID]
		if !ok {
			out[p.ID] = 0
			continue
		}
		out[p.ID] = end - p.ArrivalTime
	}
	return out
}

// ResponseTimes returns, per process, the delay from arrival to first run.
// Processes with no interval in schedule report 0.
func ResponseTimes(schedule Schedule, processes []Process) map[int]int64 {
	starts := make(map[int]int64, len(processes))
	for _, iv := range schedule {
		if _, ok := starts[iv.ProcessID]; !ok {
			starts[iv.ProcessID] = iv.Start
		}
	}
	out := make(map[int]int64, len(processes))
	for _, p := range processes {
		start, ok := starts[p.ID]
		if !ok {
			out[p.ID] = 0
			continue
		}
		out[p.ID] = start - p.ArrivalTime
	}
	return out
}

// AverageWaitingTime is the arithmetic mean of waiting; 0 for an empty map.
func AverageWaitingTime(waiting map[int]int64) float64 {
	return CalculateMean(sortedValues(waiting))
}

// AverageTurnaroundTime is the arithmetic mean of turnaround; 0 for an empty map.
func AverageTurnaroundTime(turnaround map[int]int64) float64 {
	return CalculateMean(sortedValues(turnaround))
}

// CPUUtilization returns busy time as a percentage of the schedule span.
// An empty schedule is 0% utilized; a zero span counts as fully utilized.
func CPUUtilization(schedule Schedule) float64 {
	if len(schedule) == 0 {
		return 0
	}
	span := Makespan(schedule)
	if span == 0 {
		return 100
	}
	return float64(BusyTime(schedule)) / float64(span) * 100
}

// Throughput returns distinct processes in schedule per unit of span.
// It is 0 for an empty schedule or process list and +Inf for a zero span.
func Throughput(schedule Schedule, processes []Process) float64 {
	if len(schedule) == 0 || len(processes) == 0 {
		return 0
	}
	span := Makespan(schedule)
	if span == 0 {
		return math.Inf(1)
	}
	return float64(len(schedule.ProcessIDs())) / float64(span)
}

// Makespan is max(end) - min(start); 0 for an empty schedule.
func Makespan(schedule Schedule) int64 {
	if len(schedule) == 0 {
		return 0
	}
	first, last := schedule[0].Start, schedule[0].End
	for _, iv := range schedule[1:] {
		first = min(first, iv.Start)
		last = max(last, iv.End)
	}
	return last - first
}

// BusyTime sums the interval durations.
func BusyTime(schedule Schedule) int64 {
	var busy int64
	for _, iv := range schedule {
		busy += iv.Duration()
	}
	return busy
}

// IdleTime is the part of the span during which no interval runs.
func IdleTime(schedule Schedule) int64 {
	return Makespan(schedule) - BusyTime(schedule)
}

// ContextSwitches counts adjacent intervals belonging to different processes.
func ContextSwitches(schedule Schedule) int {
	switches := 0
	for i := 1; i < len(schedule); i++ {
		if schedule[i].ProcessID != schedule[i-1].ProcessID {
			switches++
		}
	}
	return switches
}

// lastEnds maps each process to the end of its last interval in schedule order.
func lastEnds(schedule Schedule) map[int]int64 {
	ends := make(map[int]int64)
	for _, iv := range schedule {
		ends[iv.ProcessID] = iv.End
	}
	return ends
}

func sortedKeys(m map[int]int64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// sortedValues returns map values ordered by key, so float reductions over
// them do not depend on map iteration order.
func sortedValues(m map[int]int64) []int64 {
	values := make([]int64, 0, len(m))
	for _, k := range sortedKeys(m) {
		values = append(values, m[k])
	}
	return values
}
