package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/workload"
)

var (
	genSeed        int64
	genSpec        workload.GeneratorSpec
	genPriorityMin int64
	genPriorityMax int64
	genNoPriority  bool
)

// generateCmd writes a seeded random workload as YAML.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random workload spec on stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := genSpec
		if !genNoPriority {
			g.Priority = &workload.IntRange{Min: genPriorityMin, Max: genPriorityMax}
		}
		return generateWorkload(cmd.OutOrStdout(), g, genSeed)
	},
}

// generateWorkload materializes g under seed into explicit processes so the
// output can be edited by hand and replayed without the generator.
func generateWorkload(w io.Writer, g workload.GeneratorSpec, seed int64) error {
	processes, err := workload.Generate(g, workload.NewPartitionedRNG(workload.NewSimulationKey(seed)), 1)
	if err != nil {
		return fmt.Errorf("generating workload: %w", err)
	}
	data, err := workload.WriteWorkloadSpec(&workload.WorkloadSpec{
		Version:   workload.CurrentVersion,
		Seed:      seed,
		Processes: processes,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for the generator")
	generateCmd.Flags().IntVar(&genSpec.Count, "count", 10, "Number of processes")
	generateCmd.Flags().Int64Var(&genSpec.ArrivalSpan, "arrival-span", 20, "Arrivals fall in [0, span] (mean span/count gap for poisson)")
	generateCmd.Flags().StringVar(&genSpec.ArrivalProcess, "arrival-process", workload.ArrivalUniform, "Arrival process (uniform, poisson)")
	generateCmd.Flags().Int64Var(&genSpec.Burst.Min, "burst-min", 1, "Minimum burst time")
	generateCmd.Flags().Int64Var(&genSpec.Burst.Max, "burst-max", 10, "Maximum burst time")
	generateCmd.Flags().Int64Var(&genPriorityMin, "priority-min", 0, "Minimum priority (lower runs first)")
	generateCmd.Flags().Int64Var(&genPriorityMax, "priority-max", 4, "Maximum priority")
	generateCmd.Flags().BoolVar(&genNoPriority, "no-priority", false, "Omit priorities")
}
