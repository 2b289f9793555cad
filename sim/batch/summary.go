package batch

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/schedsim/schedsim/sim"
)

// Distribution captures statistical summary of a metric.
type Distribution struct {
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for fewer than two values
	P50    float64
	P95    float64
	Min    float64
	Max    float64
	Count  int
}

// NewDistribution computes a Distribution from raw values.
// Non-finite values are skipped. Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return Distribution{}
	}
	sort.Float64s(sorted)

	d := Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		Count: len(sorted),
	}
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}

// Summary aggregates the successful results of a batch.
type Summary struct {
	Jobs   int
	Failed int

	AverageWaiting    Distribution
	AverageTurnaround Distribution
	AverageResponse   Distribution
	CPUUtilization    Distribution
	Throughput        Distribution
	ContextSwitches   Distribution
}

// Summarize builds a Summary over results. Failed results count toward
// Failed and are otherwise ignored.
func Summarize(results []Result) *Summary {
	s := &Summary{Jobs: len(results)}
	var wait, turn, resp, util, tput, switches []float64
	for i := range results {
		m := results[i].Metrics
		if !results[i].OK() || m == nil {
			s.Failed++
			continue
		}
		wait = append(wait, m.AverageWaiting)
		turn = append(turn, m.AverageTurnaround)
		resp = append(resp, m.AverageResponse)
		util = append(util, m.CPUUtilization)
		tput = append(tput, m.Throughput)
		switches = append(switches, float64(m.ContextSwitches))
	}
	s.AverageWaiting = NewDistribution(wait)
	s.AverageTurnaround = NewDistribution(turn)
	s.AverageResponse = NewDistribution(resp)
	s.CPUUtilization = NewDistribution(util)
	s.Throughput = NewDistribution(tput)
	s.ContextSwitches = NewDistribution(switches)
	return s
}

// SummarizeByPolicy groups results by policy and summarizes each group.
func SummarizeByPolicy(results []Result) map[sim.Policy]*Summary {
	groups := make(map[sim.Policy][]Result)
	for _, r := range results {
		groups[r.Job.Policy] = append(groups[r.Job.Policy], r)
	}
	out := make(map[sim.Policy]*Summary, len(groups))
	for policy, rs := range groups {
		out[policy] = Summarize(rs)
	}
	return out
}

// BestByAverageWaiting returns the index of the successful result with the
// lowest average waiting time, or -1 when none succeeded. Ties keep the
// earliest result.
func BestByAverageWaiting(results []Result) int {
	best := -1
	for i := range results {
		if !results[i].OK() || results[i].Metrics == nil {
			continue
		}
		if best < 0 || results[i].Metrics.AverageWaiting < results[best].Metrics.AverageWaiting {
			best = i
		}
	}
	return best
}
