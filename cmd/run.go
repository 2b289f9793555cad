package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// runOptions is everything the run command needs after flag parsing.
type runOptions struct {
	source       workloadSource
	bundle       sim.PolicyBundle
	showInterval bool
}

var (
	runSource       workloadSource
	runPolicy       string
	runQuantum      int64
	runCoalesce     bool
	runTraceLevel   string
	runPolicyConfig string
	runIntervals    bool
)

// runCmd simulates one policy over one workload and prints the report.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one scheduling policy over a workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := resolvePolicyBundle(cmd)
		if err != nil {
			return err
		}
		runSource.SeedSet = cmd.Flags().Changed("seed")
		return runSimulation(cmd.OutOrStdout(), runOptions{
			source:       runSource,
			bundle:       *bundle,
			showInterval: runIntervals,
		})
	},
}

// resolvePolicyBundle loads --policy-config when given, then lets explicitly
// set flags override the file's values.
func resolvePolicyBundle(cmd *cobra.Command) (*sim.PolicyBundle, error) {
	bundle := &sim.PolicyBundle{}
	if runPolicyConfig != "" {
		b, err := sim.LoadPolicyBundle(runPolicyConfig)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Loaded policy config from %s", runPolicyConfig)
		bundle = b
	}
	flags := cmd.Flags()
	if runPolicyConfig == "" || flags.Changed("policy") {
		bundle.Policy = runPolicy
	}
	if flags.Changed("quantum") {
		q := runQuantum
		bundle.TimeQuantum = &q
	}
	if flags.Changed("coalesce") {
		c := runCoalesce
		bundle.Coalesce = &c
	}
	if runPolicyConfig == "" || flags.Changed("trace") {
		bundle.TraceLevel = runTraceLevel
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy configuration: %w", err)
	}
	return bundle, nil
}

func runSimulation(w io.Writer, opts runOptions) error {
	processes, err := opts.source.load()
	if err != nil {
		return err
	}
	policy, err := opts.bundle.PolicyValue()
	if err != nil {
		return err
	}
	params := opts.bundle.Params()
	logrus.Infof("Simulating %s over %d processes (quantum=%d, coalesce=%v)",
		policy, len(processes), params.TimeQuantum, params.Coalesce)

	schedule, err := sim.Simulate(processes, policy, params)
	if err != nil {
		return err
	}
	m := sim.ComputeMetrics(schedule, processes)

	_, _ = fmt.Fprintf(w, "%s %s\n\n", heading("Policy:"), policy)
	if opts.showInterval {
		outputIntervals(w, schedule)
	}
	outputSchedule(w, processes, m)
	outputMetrics(w, m)
	if params.Trace.Enabled() {
		outputTraceSummary(w, trace.Summarize(params.Trace))
	}
	return nil
}

func init() {
	registerSourceFlags(runCmd, &runSource)
	runCmd.Flags().StringVar(&runPolicy, "policy", "fcfs", "Scheduling policy (fcfs, round-robin|rr, priority, sjf, preemptive-priority)")
	runCmd.Flags().Int64Var(&runQuantum, "quantum", sim.DefaultTimeQuantum, "Round robin time quantum")
	runCmd.Flags().BoolVar(&runCoalesce, "coalesce", false, "Merge touching intervals of the same process")
	runCmd.Flags().StringVar(&runTraceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&runPolicyConfig, "policy-config", "", "YAML policy configuration; explicit flags override its values")
	runCmd.Flags().BoolVar(&runIntervals, "intervals", false, "Print every interval")
}

// registerSourceFlags adds the workload input flags shared by run and compare.
func registerSourceFlags(cmd *cobra.Command, src *workloadSource) {
	cmd.Flags().StringVar(&src.Spec, "workload", "", "YAML workload spec")
	cmd.Flags().StringVar(&src.CSV, "csv", "", "CSV process file (id,arrival_time,burst_time[,priority])")
	cmd.Flags().Int64Var(&src.Seed, "seed", 42, "Overrides the workload spec seed for generated processes")
}
