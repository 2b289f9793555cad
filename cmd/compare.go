package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/batch"
)

type compareOptions struct {
	source  workloadSource
	quantum int64
	workers int
	runs    int
}

var (
	compareSource  workloadSource
	compareQuantum int64
	compareWorkers int
	compareRuns    int
)

// compareCmd runs every policy over the same workload.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every scheduling policy over a workload and compare metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		compareSource.SeedSet = cmd.Flags().Changed("seed")
		return runComparison(cmd.Context(), cmd.OutOrStdout(), compareOptions{
			source:  compareSource,
			quantum: compareQuantum,
			workers: compareWorkers,
			runs:    compareRuns,
		})
	},
}

func runComparison(ctx context.Context, w io.Writer, opts compareOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.runs < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", opts.runs)
	}
	if opts.quantum <= 0 {
		return fmt.Errorf("--quantum must be positive, got %d", opts.quantum)
	}
	params := sim.Params{TimeQuantum: opts.quantum}

	jobs, err := comparisonJobs(opts, params)
	if err != nil {
		return err
	}
	logrus.Infof("Comparing %d policies over %d run(s)", len(sim.AllPolicies), opts.runs)

	results, err := batch.Evaluate(ctx, jobs, opts.workers)
	if err != nil {
		return err
	}
	for _, r := range results {
		if !r.OK() {
			logrus.Warnf("%v", r.Err)
		}
	}

	if opts.runs == 1 {
		outputComparison(w, results)
		return nil
	}
	outputDistributions(w, batch.SummarizeByPolicy(results))
	return nil
}

// comparisonJobs builds one job per policy per run. Run i uses seed+i, so
// repeated runs need a workload spec with a generator.
func comparisonJobs(opts compareOptions, params sim.Params) ([]batch.Job, error) {
	if opts.runs == 1 {
		processes, err := opts.source.load()
		if err != nil {
			return nil, err
		}
		return batch.PolicyJobs("", processes, params), nil
	}

	if err := opts.source.validate(); err != nil {
		return nil, err
	}
	if opts.source.Spec == "" {
		return nil, fmt.Errorf("--runs > 1 requires --workload with a generator section")
	}
	spec, err := opts.source.loadSpec()
	if err != nil {
		return nil, err
	}
	if spec.Generator == nil || spec.Generator.Count == 0 {
		return nil, fmt.Errorf("--runs > 1 requires a generator section in %s", opts.source.Spec)
	}
	base := spec.Seed
	var jobs []batch.Job
	for i := 0; i < opts.runs; i++ {
		spec.Seed = base + int64(i)
		processes, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("building run %d: %w", i, err)
		}
		jobs = append(jobs, batch.PolicyJobs(fmt.Sprintf("seed%d", spec.Seed), processes, params)...)
	}
	return jobs, nil
}

func init() {
	registerSourceFlags(compareCmd, &compareSource)
	compareCmd.Flags().Int64Var(&compareQuantum, "quantum", sim.DefaultTimeQuantum, "Round robin time quantum")
	compareCmd.Flags().IntVar(&compareWorkers, "workers", 0, "Concurrent simulations (0 = GOMAXPROCS)")
	compareCmd.Flags().IntVar(&compareRuns, "runs", 1, "Repeat over generated workloads with seeds seed, seed+1, ...")
}
