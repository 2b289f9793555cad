package sim

import (
	"math/rand"
	"testing"

	"github.com/schedsim/schedsim/sim/internal/testutil"
)

func intPtr(v int) *int { return &v }

// sampleProcesses is the four-process workload used throughout the policy tests:
// (id, arrival, burst, priority) = (1,0,4,2) (2,1,3,1) (3,2,2,3) (4,3,5,2).
func sampleProcesses() []Process {
	return []Process{
		{ID: 1, ArrivalTime: 0, BurstTime: 4, Priority: intPtr(2)},
		{ID: 2, ArrivalTime: 1, BurstTime: 3, Priority: intPtr(1)},
		{ID: 3, ArrivalTime: 2, BurstTime: 2, Priority: intPtr(3)},
		{ID: 4, ArrivalTime: 3, BurstTime: 5, Priority: intPtr(2)},
	}
}

// testRandomProcesses builds n processes with ids 1..n from a fixed-seed RNG.
// Arrivals are spread over [0, 3n) so idle gaps and bursts of arrivals both occur.
func testRandomProcesses(seed int64, n int) []Process {
	rng := rand.New(rand.NewSource(seed))
	processes := make([]Process, n)
	for i := range processes {
		processes[i] = Process{
			ID:          i + 1,
			ArrivalTime: rng.Int63n(int64(3 * n)),
			BurstTime:   1 + rng.Int63n(8),
			Priority:    intPtr(rng.Intn(4)),
		}
	}
	return processes
}

func toSpans(schedule Schedule) []testutil.Span {
	spans := make([]testutil.Span, len(schedule))
	for i, iv := range schedule {
		spans[i] = testutil.Span{ID: iv.ProcessID, Start: iv.Start, End: iv.End}
	}
	return spans
}

func toTasks(processes []Process) map[int]testutil.Task {
	tasks := make(map[int]testutil.Task, len(processes))
	for _, p := range processes {
		tasks[p.ID] = testutil.Task{Arrival: p.ArrivalTime, Burst: p.BurstTime}
	}
	return tasks
}

// mustSimulate runs Simulate and fails the test on error. A zero quantum is
// replaced by DefaultTimeQuantum so every policy can share one call site.
func mustSimulate(t *testing.T, processes []Process, policy Policy, params Params) Schedule {
	t.Helper()
	if params.TimeQuantum == 0 {
		params.TimeQuantum = DefaultTimeQuantum
	}
	schedule, err := Simulate(processes, policy, params)
	if err != nil {
		t.Fatalf("Simulate(%s): unexpected error: %v", policy, err)
	}
	return schedule
}
