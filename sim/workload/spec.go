package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
)

// CurrentVersion is the workload spec version written by Generate callers.
const CurrentVersion = "1"

// Arrival processes understood by GeneratorSpec.
const (
	ArrivalUniform = "uniform"
	ArrivalPoisson = "poisson"
)

var validArrivalProcesses = map[string]bool{
	"":             true, // empty defaults to uniform
	ArrivalUniform: true,
	ArrivalPoisson: true,
}

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string         `yaml:"version"`
	Seed      int64          `yaml:"seed"`
	Processes []sim.Process  `yaml:"processes,omitempty"`
	Generator *GeneratorSpec `yaml:"generator,omitempty"`
}

// GeneratorSpec describes randomly generated processes appended after the
// explicit ones.
type GeneratorSpec struct {
	Count          int       `yaml:"count"`
	ArrivalSpan    int64     `yaml:"arrival_span"`
	ArrivalProcess string    `yaml:"arrival_process,omitempty"`
	Burst          IntRange  `yaml:"burst"`
	Priority       *IntRange `yaml:"priority,omitempty"` // nil = generated processes carry no priority
}

// IntRange is an inclusive [Min, Max] range.
type IntRange struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// LoadWorkloadSpec reads and parses a YAML workload spec file.
// Unrecognized keys are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = CurrentVersion
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
// Process-level checks (duplicate ids, positive bursts) are repeated by the
// engine; doing them here reports problems before any policy runs.
func (s *WorkloadSpec) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported workload version %q; valid: %s", s.Version, CurrentVersion)
	}
	if len(s.Processes) == 0 && (s.Generator == nil || s.Generator.Count == 0) {
		return fmt.Errorf("at least one process or a generator with count > 0 required")
	}
	seen := make(map[int]bool, len(s.Processes))
	for i, p := range s.Processes {
		prefix := fmt.Sprintf("processes[%d]", i)
		if seen[p.ID] {
			return fmt.Errorf("%s: duplicate id %d", prefix, p.ID)
		}
		seen[p.ID] = true
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%s: arrival_time must be non-negative, got %d", prefix, p.ArrivalTime)
		}
		if p.BurstTime <= 0 {
			return fmt.Errorf("%s: burst_time must be positive, got %d", prefix, p.BurstTime)
		}
	}
	if s.Generator != nil {
		if err := s.Generator.Validate(); err != nil {
			return fmt.Errorf("generator: %w", err)
		}
	}
	return nil
}

// Validate checks the generator's ranges.
func (g *GeneratorSpec) Validate() error {
	if g.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", g.Count)
	}
	if g.ArrivalSpan < 0 || g.ArrivalSpan == math.MaxInt64 {
		return fmt.Errorf("arrival_span must be in [0, %d), got %d", int64(math.MaxInt64), g.ArrivalSpan)
	}
	if !validArrivalProcesses[g.ArrivalProcess] {
		return fmt.Errorf("unknown arrival_process %q; valid: uniform, poisson", g.ArrivalProcess)
	}
	if g.Burst.Min <= 0 || g.Burst.Max < g.Burst.Min {
		return fmt.Errorf("burst range must satisfy 0 < min <= max, got [%d, %d]", g.Burst.Min, g.Burst.Max)
	}
	if g.Priority != nil {
		if g.Priority.Max < g.Priority.Min {
			return fmt.Errorf("priority range must satisfy min <= max, got [%d, %d]", g.Priority.Min, g.Priority.Max)
		}
		if g.Priority.Min < math.MinInt || g.Priority.Max > math.MaxInt {
			return fmt.Errorf("priority range [%d, %d] does not fit in int", g.Priority.Min, g.Priority.Max)
		}
		if !g.Priority.sampleable() {
			return fmt.Errorf("priority range [%d, %d] is wider than %d", g.Priority.Min, g.Priority.Max, int64(math.MaxInt64))
		}
	}
	return nil
}

// sampleable reports whether Max-Min+1 fits in a positive int64, as
// rand.Int63n requires.
func (r IntRange) sampleable() bool {
	width := r.Max - r.Min
	return width >= 0 && width < math.MaxInt64
}

// Build validates the spec and returns its processes: the explicit ones in
// file order followed by generated ones with ids after the largest explicit id.
func (s *WorkloadSpec) Build() ([]sim.Process, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	processes := make([]sim.Process, 0, len(s.Processes))
	processes = append(processes, s.Processes...)
	if s.Generator == nil || s.Generator.Count == 0 {
		return processes, nil
	}

	firstID := 1
	for _, p := range s.Processes {
		firstID = max(firstID, p.ID+1)
	}
	rng := NewPartitionedRNG(NewSimulationKey(s.Seed))
	generated, err := Generate(*s.Generator, rng, firstID)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("workload: %d explicit + %d generated processes (seed %d)", len(s.Processes), len(generated), s.Seed)
	return append(processes, generated...), nil
}

// WriteWorkloadSpec marshals spec as YAML.
func WriteWorkloadSpec(spec *WorkloadSpec) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return nil, fmt.Errorf("encoding workload spec: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding workload spec: %w", err)
	}
	return buf.Bytes(), nil
}
