// Package sim provides the CPU scheduling simulation engine for schedsim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - process.go: Process input, Interval/Schedule output, input validation
//   - scheduler.go: Policy names, Params and the Simulate dispatcher
//   - fcfs.go, round_robin.go, priority.go: the five policy state machines
//   - metrics.go: waiting/turnaround/response times, utilization, throughput
//
// # Architecture
//
// Data flows one way: []Process → Simulate → Schedule → ComputeMetrics.
// Every Simulate call is pure: it sorts a private copy of its input,
// allocates its own remaining-time table and ready queue, and discards them
// on return. Nothing survives between calls, so independent calls may run
// concurrently (see sim/batch/).
//
// Sub-packages:
//   - sim/trace/: optional decision trace the policies append to
//   - sim/workload/: YAML/CSV workload loading and seeded generation
//   - sim/batch/: concurrent evaluation of many independent simulations
//
// # Policies
//
//   - fcfs: arrival order, one interval per process
//   - round-robin: FIFO time slices; arrivals are admitted before re-queueing
//   - priority: non-preemptive, lowest priority value first
//   - sjf: non-preemptive, shortest burst first
//   - preemptive-priority: unit time steps, lowest priority value first
//
// Callers that choose the dispatch order themselves (search procedures,
// learning agents) use Stepper and ScheduleInOrder instead of Simulate.
package sim
