// Package batch runs independent simulations concurrently and aggregates
// their metrics. Every job owns its inputs; nothing is shared between
// workers except the read-only process slices.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// Job is one Simulate call.
// Params.Trace, when set, must not be shared with another job.
type Job struct {
	Name      string
	Processes []sim.Process
	Policy    sim.Policy
	Params    sim.Params
}

// Result bundles the outputs of one job.
// On failure Err is set and Schedule, Metrics and TraceSummary are nil.
type Result struct {
	Job          Job
	Schedule     sim.Schedule
	Metrics      *sim.Metrics
	TraceSummary *trace.TraceSummary // nil unless the job carried a trace
	Err          error
	WallTime     time.Duration
}

// OK reports whether the job produced a schedule.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Evaluate runs jobs on at most workers goroutines (GOMAXPROCS when
// workers <= 0). Results are returned in job order. A job with invalid
// input records its error in Result.Err and does not affect the others.
// Cancelling ctx stops dispatching further jobs; the returned error is then
// ctx.Err() and undispatched results carry it too.
func Evaluate(ctx context.Context, jobs []Job, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(jobs))
	for i := range jobs {
		results[i].Job = jobs[i]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runJob(jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		markUndispatched(results, err)
		return results, err
	}
	if err := ctx.Err(); err != nil {
		markUndispatched(results, err)
		return results, err
	}
	logrus.Debugf("batch: evaluated %d jobs on %d workers", len(jobs), workers)
	return results, nil
}

func runJob(job Job) Result {
	start := time.Now()
	schedule, err := sim.Simulate(job.Processes, job.Policy, job.Params)
	res := Result{Job: job, WallTime: time.Since(start)}
	if err != nil {
		res.Err = fmt.Errorf("job %q: %w", job.Name, err)
		return res
	}
	res.Schedule = schedule
	res.Metrics = sim.ComputeMetrics(schedule, job.Processes)
	if job.Params.Trace.Enabled() {
		res.TraceSummary = trace.Summarize(job.Params.Trace)
	}
	return res
}

// markUndispatched sets err on results that never ran.
func markUndispatched(results []Result, err error) {
	for i := range results {
		if results[i].Metrics == nil && results[i].Err == nil {
			results[i].Err = err
		}
	}
}

// PolicyJobs returns one job per policy in sim.AllPolicies over the same
// processes. When params carries a trace, each job gets its own trace with
// the same configuration.
func PolicyJobs(name string, processes []sim.Process, params sim.Params) []Job {
	jobs := make([]Job, 0, len(sim.AllPolicies))
	for _, policy := range sim.AllPolicies {
		p := params
		if params.Trace != nil {
			p.Trace = trace.NewSimulationTrace(params.Trace.Config)
		}
		jobName := policy.String()
		if name != "" {
			jobName = name + "/" + jobName
		}
		jobs = append(jobs, Job{Name: jobName, Processes: processes, Policy: policy, Params: p})
	}
	return jobs
}
