package workload

import (
	"fmt"
	"sort"

	"github.com/schedsim/schedsim/sim"
)

// Generate draws g.Count processes with ids firstID, firstID+1, ... in
// arrival order. Arrivals, bursts and priorities come from separate RNG
// subsystems, so the same seed always yields the same processes.
func Generate(g GeneratorSpec, rng *PartitionedRNG, firstID int) ([]sim.Process, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("generate: nil rng")
	}

	arrivalRNG := rng.ForSubsystem(SubsystemArrival)
	burstRNG := rng.ForSubsystem(SubsystemBurst)
	sampler := NewArrivalSampler(&g)

	arrivals := make([]int64, g.Count)
	var prev int64
	for i := range arrivals {
		arrivals[i] = sampler.SampleArrival(arrivalRNG, prev)
		prev = arrivals[i]
	}
	sort.Slice(arrivals, func(i, j int) bool { return arrivals[i] < arrivals[j] })

	processes := make([]sim.Process, g.Count)
	for i := range processes {
		processes[i] = sim.Process{
			ID:          firstID + i,
			ArrivalTime: arrivals[i],
			BurstTime:   sampleRange(burstRNG.Int63n, g.Burst),
		}
	}
	if g.Priority != nil {
		priorityRNG := rng.ForSubsystem(SubsystemPriority)
		for i := range processes {
			pr := int(sampleRange(priorityRNG.Int63n, *g.Priority))
			processes[i].Priority = &pr
		}
	}
	return processes, nil
}

// sampleRange draws uniformly from the inclusive range r.
func sampleRange(int63n func(int64) int64, r IntRange) int64 {
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + int63n(r.Max-r.Min+1)
}
