package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/workload"
)

// workloadSource names where processes come from. Exactly one of Spec
// and CSV is set.
type workloadSource struct {
	Spec string // YAML workload spec path
	CSV  string // CSV process file path

	// Seed overrides the spec seed when SeedSet is true.
	Seed    int64
	SeedSet bool
}

func (s workloadSource) validate() error {
	switch {
	case s.Spec == "" && s.CSV == "":
		return fmt.Errorf("one of --workload or --csv is required")
	case s.Spec != "" && s.CSV != "":
		return fmt.Errorf("--workload and --csv are mutually exclusive")
	}
	return nil
}

// loadSpec reads the YAML workload spec and applies the seed override.
func (s workloadSource) loadSpec() (*workload.WorkloadSpec, error) {
	spec, err := workload.LoadWorkloadSpec(s.Spec)
	if err != nil {
		return nil, err
	}
	if s.SeedSet {
		logrus.Infof("Overriding workload seed %d with --seed %d", spec.Seed, s.Seed)
		spec.Seed = s.Seed
	}
	return spec, nil
}

// load returns the processes of the configured source.
func (s workloadSource) load() ([]sim.Process, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.CSV != "" {
		if s.SeedSet {
			logrus.Warnf("--seed has no effect with --csv")
		}
		processes, err := workload.LoadCSVProcesses(s.CSV)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Loaded %d processes from %s", len(processes), s.CSV)
		return processes, nil
	}
	spec, err := s.loadSpec()
	if err != nil {
		return nil, err
	}
	processes, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("building workload %s: %w", s.Spec, err)
	}
	logrus.Infof("Loaded %d processes from %s", len(processes), s.Spec)
	return processes, nil
}
