package sim

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim/trace"
)

// DefaultTimeQuantum is the round robin slice used when none is configured.
const DefaultTimeQuantum int64 = 2

// PolicyBundle holds policy configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" so CLI flags can fill them.
type PolicyBundle struct {
	Policy      string `yaml:"policy"`
	TimeQuantum *int64 `yaml:"time_quantum,omitempty"`
	Coalesce    *bool  `yaml:"coalesce,omitempty"`
	TraceLevel  string `yaml:"trace_level,omitempty"`
}

// LoadPolicyBundle reads and parses a YAML policy configuration file.
// Unrecognized keys are rejected.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Validate checks the policy name and parameter ranges in the bundle.
func (b *PolicyBundle) Validate() error {
	if !IsValidPolicy(b.Policy) {
		return fmt.Errorf("unknown policy %q", b.Policy)
	}
	if b.TimeQuantum != nil && *b.TimeQuantum <= 0 {
		return fmt.Errorf("time_quantum must be positive, got %d", *b.TimeQuantum)
	}
	if !trace.IsValidTraceLevel(b.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q", b.TraceLevel)
	}
	return nil
}

// PolicyValue resolves the configured policy name.
func (b *PolicyBundle) PolicyValue() (Policy, error) {
	return ParsePolicy(b.Policy)
}

// Params converts the bundle into Simulate parameters. A trace is attached
// when trace_level is "decisions". A missing time quantum falls back to
// DefaultTimeQuantum for round robin.
func (b *PolicyBundle) Params() Params {
	params := Params{TimeQuantum: DefaultTimeQuantum}
	if b.TimeQuantum != nil {
		params.TimeQuantum = *b.TimeQuantum
	} else if p, err := b.PolicyValue(); err == nil && p == PolicyRoundRobin {
		logrus.Warnf("time_quantum not set for round robin; using default %d", DefaultTimeQuantum)
	}
	if b.Coalesce != nil {
		params.Coalesce = *b.Coalesce
	}
	if trace.TraceLevel(b.TraceLevel) == trace.TraceLevelDecisions {
		params.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	}
	return params
}
